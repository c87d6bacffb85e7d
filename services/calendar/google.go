package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"receptionist/config"
	"receptionist/models"
	"receptionist/utils"
)

var scopes = []string{gcal.CalendarScope}

// GoogleService implements Service against the Google Calendar v3 API
// using service-account JWT credentials.
type GoogleService struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleService builds the calendar client from AppConfig. The subject
// is only set when explicit impersonation is enabled.
func NewGoogleService(ctx context.Context) (*GoogleService, error) {
	cfg := &jwt.Config{
		Email:      config.AppConfig.GCPClientEmail,
		PrivateKey: []byte(config.AppConfig.GCPPrivateKey),
		Scopes:     scopes,
		TokenURL:   google.JWTTokenURL,
	}
	if config.AppConfig.GCPImpersonate && config.AppConfig.GCPSubjectEmail != "" {
		cfg.Subject = config.AppConfig.GCPSubjectEmail
	}

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleService{svc: svc, calendarID: config.TargetCalendarID()}, nil
}

// QueryBusy runs a freebusy query for the window against the target
// calendar.
func (g *GoogleService) QueryBusy(ctx context.Context, window models.TimeRange) ([]models.BusyInterval, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin: window.Start.Format(time.RFC3339),
		TimeMax: window.End.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}
	resp, err := g.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, translateError(err, "Google Calendar freebusy query failed")
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		return nil, nil
	}
	busy := make([]models.BusyInterval, 0, len(cal.Busy))
	for _, b := range cal.Busy {
		start, err := time.Parse(time.RFC3339, b.Start)
		if err != nil {
			return nil, fmt.Errorf("malformed busy interval start %q: %w", b.Start, err)
		}
		end, err := time.Parse(time.RFC3339, b.End)
		if err != nil {
			return nil, fmt.Errorf("malformed busy interval end %q: %w", b.End, err)
		}
		busy = append(busy, models.BusyInterval{Start: start, End: end})
	}
	return busy, nil
}

// CreateEvent inserts the event with a Google Meet conference attached.
// Invitation emails are only sent when attendees are present.
func (g *GoogleService) CreateEvent(ctx context.Context, input EventInput) (models.CalendarEvent, error) {
	if !input.Slot.Range().Valid() {
		return models.CalendarEvent{}, utils.NewAPIError(400, "Event end must be after start")
	}

	event := &gcal.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start:       &gcal.EventDateTime{DateTime: input.Slot.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: input.Slot.End.Format(time.RFC3339)},
		Reminders:   &gcal.EventReminders{UseDefault: true, ForceSendFields: []string{"UseDefault"}},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
				RequestId:             "meet-" + uuid.NewString(),
			},
		},
	}
	sendUpdates := "none"
	if len(input.Attendees) > 0 {
		sendUpdates = "all"
		for _, a := range input.Attendees {
			event.Attendees = append(event.Attendees, &gcal.EventAttendee{
				Email:       a.Email,
				DisplayName: a.DisplayName,
			})
		}
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).
		Context(ctx).
		SendUpdates(sendUpdates).
		ConferenceDataVersion(1).
		Do()
	if err != nil {
		utils.GetLogger().Error("calendar_event_insert_failed",
			zap.String("calendarId", g.calendarID), zap.Error(err))
		return models.CalendarEvent{}, translateError(err, "Google Calendar event insert failed")
	}

	out := models.CalendarEvent{
		ID:       created.Id,
		Summary:  created.Summary,
		Start:    input.Slot.Start,
		End:      input.Slot.End,
		HTMLLink: created.HtmlLink,
		MeetLink: created.HangoutLink,
	}
	if out.MeetLink == "" && created.ConferenceData != nil {
		for _, ep := range created.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				out.MeetLink = ep.Uri
				break
			}
		}
	}
	return out, nil
}

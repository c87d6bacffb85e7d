package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"receptionist/models"
)

func TestFormatTimeForVoice(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "whole hour drops minutes", t: mustTime(t, "2026-02-27T09:00:00Z"), want: "9 AM"},
		{name: "half hour keeps minutes", t: mustTime(t, "2026-02-27T11:30:00Z"), want: "11:30 AM"},
		{name: "afternoon", t: mustTime(t, "2026-02-27T14:00:00Z"), want: "2 PM"},
		{name: "noon", t: mustTime(t, "2026-02-27T12:00:00Z"), want: "12 PM"},
		{name: "midnight", t: mustTime(t, "2026-02-27T00:00:00Z"), want: "12 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeForVoice(tt.t, time.UTC))
		})
	}
}

func TestFormatSlotReadable(t *testing.T) {
	s := slot(t, "2026-02-27T11:00:00Z", "2026-02-27T11:30:00Z")
	assert.Equal(t, "Friday, Feb 27, 2026, 11 AM - 11:30 AM", FormatSlotReadable(s, time.UTC))
}

func TestFormatIsoRange(t *testing.T) {
	s := slot(t, "2026-02-27T11:00:00Z", "2026-02-27T11:30:00Z")
	got := FormatIsoRange(s, time.UTC)
	assert.Equal(t, "2026-02-27T11:00:00Z", got.Start)
	assert.Equal(t, "2026-02-27T11:30:00Z", got.End)
	assert.Equal(t, "Friday, Feb 27, 2026, 11 AM - 11:30 AM", got.Readable)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		slots []models.Slot
		want  string
	}{
		{
			name:  "no slots",
			slots: nil,
			want:  "No slots available",
		},
		{
			name: "contiguous slots collapse to a range",
			slots: []models.Slot{
				slot(t, "2026-02-27T09:00:00Z", "2026-02-27T09:30:00Z"),
				slot(t, "2026-02-27T09:30:00Z", "2026-02-27T10:00:00Z"),
				slot(t, "2026-02-27T10:00:00Z", "2026-02-27T10:30:00Z"),
			},
			want: "Friday Feb 27: There is availability from 9 AM to 10:30 AM",
		},
		{
			name: "sparse slots list each time",
			slots: []models.Slot{
				slot(t, "2026-02-27T09:00:00Z", "2026-02-27T09:30:00Z"),
				slot(t, "2026-02-27T14:00:00Z", "2026-02-27T14:30:00Z"),
			},
			want: "Friday Feb 27: 9 AM, 2 PM",
		},
		{
			name: "single slot",
			slots: []models.Slot{
				slot(t, "2026-02-27T11:30:00Z", "2026-02-27T12:00:00Z"),
			},
			want: "Friday Feb 27: There is availability from 11:30 AM to 12 PM",
		},
		{
			name: "working-day coverage uses the fixed phrase",
			slots: func() []models.Slot {
				var out []models.Slot
				start := mustTime(t, "2026-02-27T09:00:00Z")
				for i := 0; i < 18; i++ {
					out = append(out, models.Slot{
						Start: start.Add(time.Duration(i) * 30 * time.Minute),
						End:   start.Add(time.Duration(i+1) * 30 * time.Minute),
					})
				}
				return out
			}(),
			want: "Friday Feb 27: There is availability from 9 AM to 6 PM",
		},
		{
			name: "days are separated and ordered even from unsorted input",
			slots: []models.Slot{
				slot(t, "2026-03-02T10:00:00Z", "2026-03-02T10:30:00Z"),
				slot(t, "2026-02-27T09:00:00Z", "2026-02-27T09:30:00Z"),
				slot(t, "2026-03-02T15:00:00Z", "2026-03-02T15:30:00Z"),
			},
			want: "Friday Feb 27: There is availability from 9 AM to 9:30 AM; Monday Mar 2: 10 AM, 3 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.slots, time.UTC))
		})
	}
}

func TestBuildDaySummaries(t *testing.T) {
	slots := []models.Slot{
		slot(t, "2026-02-27T14:00:00Z", "2026-02-27T14:30:00Z"),
		slot(t, "2026-02-27T09:00:00Z", "2026-02-27T09:30:00Z"),
	}

	summaries := BuildDaySummaries(slots, time.UTC)

	assert.Len(t, summaries, 1)
	d := summaries[0]
	assert.Equal(t, "Friday Feb 27", d.DayLabel)
	assert.Equal(t, 2, d.SlotCount)
	assert.Equal(t, 9.0, d.MinStartH)
	assert.Equal(t, 14.5, d.MaxEndH)
	assert.Equal(t, []string{"9 AM", "2 PM"}, d.Times)
	assert.False(t, d.Continuous())
	assert.False(t, d.AllDay())
}

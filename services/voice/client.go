package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"receptionist/config"
	"receptionist/utils"
)

// StartSessionParams identifies the caller for an outbound receptionist
// call.
type StartSessionParams struct {
	CallerName   string `json:"callerName"`
	CallerNumber string `json:"callerNumber"`
}

// Service triggers outbound calls on the Atoms voice platform.
type Service interface {
	StartReceptionistSession(ctx context.Context, params StartSessionParams) (map[string]any, error)
}

// Client implements Service against the Atoms conversation API.
type Client struct {
	BaseURL            string
	APIKey             string
	AgentID            string
	DefaultPhoneNumber string
	HTTPClient         *http.Client
}

func NewClient() *Client {
	cfg := config.AppConfig
	return &Client{
		BaseURL:            cfg.AtomsAPIBaseURL,
		APIKey:             cfg.AtomsAPIKey,
		AgentID:            cfg.AtomsAgentID,
		DefaultPhoneNumber: cfg.AtomsDefaultPhoneNumber,
		HTTPClient:         http.DefaultClient,
	}
}

// outboundCallURL normalizes the configured base URL. Older configs point
// at api.smallest.ai; those map to the Atoms API host.
func (c *Client) outboundCallURL() string {
	trimmed := strings.TrimRight(c.BaseURL, "/")
	if strings.Contains(trimmed, "api.smallest.ai") && !strings.Contains(trimmed, "atoms-api.smallest.ai") {
		return "https://atoms-api.smallest.ai/api/v1/conversation/outbound"
	}
	if strings.HasSuffix(trimmed, "/api/v1") {
		return trimmed + "/conversation/outbound"
	}
	return trimmed + "/api/v1/conversation/outbound"
}

// StartReceptionistSession starts an outbound call to the caller's number
// using the configured receptionist agent.
func (c *Client) StartReceptionistSession(ctx context.Context, params StartSessionParams) (map[string]any, error) {
	phoneNumber := params.CallerNumber
	if phoneNumber == "" {
		phoneNumber = c.DefaultPhoneNumber
	}
	if phoneNumber == "" {
		return nil, utils.NewAPIError(http.StatusBadRequest,
			"Missing caller number. Set ATOMS_DEFAULT_PHONE_NUMBER for one-click calling.")
	}

	callerName := params.CallerName
	if callerName == "" {
		callerName = "Caller"
	}
	payload := map[string]any{
		"agentId":     c.AgentID,
		"phoneNumber": phoneNumber,
		"variables": map[string]string{
			"callerName": callerName,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.outboundCallURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, utils.NewAPIError(http.StatusBadGateway, fmt.Sprintf("Atoms API request failed: %v", err))
	}
	defer resp.Body.Close()

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil && resp.StatusCode < 400 {
		return nil, utils.NewAPIError(http.StatusBadGateway, "Atoms API returned an unreadable response")
	}

	if resp.StatusCode >= 400 {
		return nil, utils.NewAPIError(resp.StatusCode, upstreamErrorMessage(data, resp.StatusCode))
	}
	return data, nil
}

// upstreamErrorMessage prefers the vendor's own error text, falling back
// to a status-tagged generic message.
func upstreamErrorMessage(data map[string]any, status int) string {
	for _, key := range []string{"message", "error"} {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	if errs, ok := data["errors"].([]any); ok && len(errs) > 0 {
		parts := make([]string, 0, len(errs))
		for _, e := range errs {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return fmt.Sprintf("Atoms API request failed (%d)", status)
}

package onesignal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://onesignal.com/api/v1"

// Client is a minimal OneSignal REST client. Credentials are injected at
// construction time, never read from process-global state.
type Client struct {
	AppID      string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func New(appID, apiKey string) (*Client, error) {
	if appID == "" {
		return nil, errors.New("ONESIGNAL_APP_ID must be set")
	}
	if apiKey == "" {
		return nil, errors.New("ONESIGNAL_API_KEY must be set")
	}
	return &Client{
		AppID:      appID,
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type notification struct {
	AppID            string            `json:"app_id"`
	Contents         map[string]string `json:"contents"`
	IncludedSegments []string          `json:"included_segments"`
	Name             string            `json:"name"`
}

// NotifyExpiringPrescriptions pushes the "prescription about to expire"
// notification to all subscribed devices.
func (c *Client) NotifyExpiringPrescriptions() error {
	body := notification{
		AppID: c.AppID,
		Contents: map[string]string{
			"fr": "Une ordonnance est sur le point d'expirer, " +
				"ouvrez l'application pour la consulter.",
			"en": "A prescription is about to expire open the app to review.",
		},
		IncludedSegments: []string{"Subscribed Users"},
		Name:             "PRESCRIPTION EXPIRE SOON",
	}
	return c.send(body)
}

func (c *Client) send(n notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/notifications", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("onesignal request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("onesignal returned status %d", resp.StatusCode)
	}
	return nil
}

package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	fcmScope       = "https://www.googleapis.com/auth/firebase.messaging"
	fcmSendTimeout = 15 * time.Second
)

// Sender delivers a composed message to a single device token and returns the
// provider-issued message id.
type Sender interface {
	Send(ctx context.Context, token string, msg Message) (string, error)
}

// FCMSender sends messages through the FCM HTTP v1 API using a service
// account credential. Initialize once at process start.
type FCMSender struct {
	projectID   string
	tokenSource oauth2.TokenSource
	client      *http.Client
	endpoint    string
}

// NewFCMSender loads the service account credential and returns a ready
// sender. The project id falls back to the one embedded in the credential.
func NewFCMSender(ctx context.Context, projectID, credentialsPath string) (*FCMSender, error) {
	if strings.TrimSpace(credentialsPath) == "" {
		return nil, fmt.Errorf("fcm credentials path required")
	}
	raw, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read fcm credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, raw, fcmScope)
	if err != nil {
		return nil, fmt.Errorf("load fcm credentials: %w", err)
	}
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("fcm project id required")
	}
	return &FCMSender{
		projectID:   projectID,
		tokenSource: creds.TokenSource,
		client:      &http.Client{Timeout: fcmSendTimeout},
		endpoint:    fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", projectID),
	}, nil
}

// Send delivers msg to a single device token. A non-2xx gateway response is
// returned as an error carrying the provider's message.
func (s *FCMSender) Send(ctx context.Context, token string, msg Message) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("fcm token required")
	}
	body, err := json.Marshal(fcmRequest{Message: newFCMMessage(token, msg)})
	if err != nil {
		return "", fmt.Errorf("marshal fcm payload: %w", err)
	}
	accessToken, err := s.tokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("fcm access token: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build fcm request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken.AccessToken)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send fcm request: %w", err)
	}
	defer resp.Body.Close()

	rawBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fcmErrorFromResponse(resp.StatusCode, rawBody)
	}

	var sendResp fcmSendResponse
	if err := json.Unmarshal(rawBody, &sendResp); err != nil {
		return "", fmt.Errorf("decode fcm response: %w", err)
	}
	return sendResp.Name, nil
}

func newFCMMessage(token string, msg Message) fcmMessage {
	return fcmMessage{
		Token: token,
		Notification: &fcmNotification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &fcmAndroidConfig{
			Priority: msg.Priority,
			Notification: &fcmAndroidNotification{
				ChannelID: msg.ChannelID,
				Sound:     msg.Sound,
				Icon:      msg.Icon,
			},
		},
		APNS: &fcmAPNSConfig{
			Payload: fcmAPNSPayload{
				APS: fcmAPS{
					Sound: msg.Sound,
					Badge: msg.Badge,
				},
			},
		},
	}
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmMessage struct {
	Token        string            `json:"token"`
	Notification *fcmNotification  `json:"notification,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *fcmAndroidConfig `json:"android,omitempty"`
	APNS         *fcmAPNSConfig    `json:"apns,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

type fcmAndroidConfig struct {
	Priority     string                  `json:"priority,omitempty"`
	Notification *fcmAndroidNotification `json:"notification,omitempty"`
}

type fcmAndroidNotification struct {
	ChannelID string `json:"channel_id,omitempty"`
	Sound     string `json:"sound,omitempty"`
	Icon      string `json:"icon,omitempty"`
}

type fcmAPNSConfig struct {
	Payload fcmAPNSPayload `json:"payload"`
}

type fcmAPNSPayload struct {
	APS fcmAPS `json:"aps"`
}

type fcmAPS struct {
	Sound string `json:"sound,omitempty"`
	Badge int    `json:"badge,omitempty"`
}

type fcmSendResponse struct {
	Name string `json:"name"`
}

type fcmErrorResponse struct {
	Error struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func fcmErrorFromResponse(statusCode int, body []byte) error {
	var resp fcmErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error.Message == "" {
		return fmt.Errorf("fcm send failed: status %d: %s", statusCode, string(body))
	}
	return fmt.Errorf("fcm send failed: %s", resp.Error.Message)
}

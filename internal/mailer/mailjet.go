// Package mailer sends the post-interview confirmation email through the
// Mailjet v3.1 API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL      = "https://api.mailjet.com"
	sendPath    = "/v3.1/send"
	contentType = "application/json"

	defaultFromName = "TalentScout"
	subject         = "Thank you for your submission"
)

type Client struct {
	apiKey    string
	apiSecret string
	fromEmail string
	fromName  string
	logger    *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func New(apiKey, apiSecret, fromEmail, fromName string, logger *zap.Logger) *Client {
	if fromName == "" {
		fromName = defaultFromName
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
		APIURL:    apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type address struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type message struct {
	From     address   `json:"From"`
	To       []address `json:"To"`
	Subject  string    `json:"Subject"`
	TextPart string    `json:"TextPart"`
}

type sendRequest struct {
	Messages []message `json:"Messages"`
}

// Notify sends the thank-you email to the candidate. It reports success only;
// a failed or unconfigured mailer must never abort the conclusion flow, so
// problems are logged and swallowed.
func (c *Client) Notify(ctx context.Context, email, name string) bool {
	if c == nil || c.apiKey == "" || c.apiSecret == "" || c.fromEmail == "" {
		return false
	}

	if name == "" {
		name = "Candidate"
	}

	payload := sendRequest{
		Messages: []message{{
			From:    address{Email: c.fromEmail, Name: c.fromName},
			To:      []address{{Email: email, Name: name}},
			Subject: subject,
			TextPart: fmt.Sprintf(
				"Dear %s,\n\nThank you, your assignment/interview has been submitted. "+
					"We appreciate your time!\n\nBest regards,\n%s Team",
				name, c.fromName,
			),
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("marshaling mail payload", zap.Error(err))
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+sendPath, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("building mail request", zap.Error(err))
		return false
	}

	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Warn("sending confirmation email", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("confirmation email rejected", zap.String("status", resp.Status))
		return false
	}

	c.logger.Info("confirmation email sent", zap.String("to", email))
	return true
}

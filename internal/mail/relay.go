package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Submission is a contact-form payload forwarded to the relay.
type Submission struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject,omitempty"`
	Service  string `json:"service,omitempty"`
	Deadline string `json:"deadline,omitempty"`
	Pages    int    `json:"pages,omitempty"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
}

// Sender delivers contact-form submissions. The HTTP relay implements
// it in production; tests use a fake.
type Sender interface {
	Send(ctx context.Context, sub Submission) error
}

// Relay posts submissions as JSON to a hosted email-relay endpoint.
// Delivery is fire and forget: a 2xx response is success, anything else
// is an error the handler turns into a localized failure message.
type Relay struct {
	url        string
	accessKey  string
	recipient  string
	httpClient *http.Client
	log        *logrus.Logger
}

var _ Sender = (*Relay)(nil)

func NewRelay(url, accessKey, recipient string, log *logrus.Logger) *Relay {
	return &Relay{
		url:        url,
		accessKey:  accessKey,
		recipient:  recipient,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

func (r *Relay) Send(ctx context.Context, sub Submission) error {
	if r.url == "" {
		return fmt.Errorf("mail relay is not configured")
	}

	payload := struct {
		Submission
		AccessKey string `json:"access_key"`
		To        string `json:"to"`
	}{Submission: sub, AccessKey: r.accessKey, To: r.recipient}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.WithError(err).Error("mail relay request failed")
		return fmt.Errorf("mail relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		r.log.WithField("status", resp.Status).Error("mail relay rejected submission")
		return fmt.Errorf("unexpected relay status: %s", resp.Status)
	}

	r.log.WithFields(logrus.Fields{"email": sub.Email, "source": sub.Source}).Info("contact submission relayed")
	return nil
}

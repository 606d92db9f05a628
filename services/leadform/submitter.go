package leadform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"proply_app_go/models"
	"proply_app_go/services"
	"proply_app_go/services/clock"
)

// ErrJoinFailed is the message for a rejected submission that gave no reason
var ErrJoinFailed = errors.New("Failed to join waitlist")

// DefaultConfirmDelay is how long the beta confirmation pretends to work
const DefaultConfirmDelay = 2 * time.Second

// Submitter sends a validated, trimmed lead. Any error is shown to the user
// by its message.
type Submitter interface {
	Submit(ctx context.Context, lead models.ContactSubmission) error
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, lead models.ContactSubmission) error

// Submit calls f
func (f SubmitterFunc) Submit(ctx context.Context, lead models.ContactSubmission) error {
	return f(ctx, lead)
}

// HTTPSubmitter posts leads to a subscribe endpoint
type HTTPSubmitter struct {
	Endpoint string
	Source   string
	Client   *http.Client
}

// NewHTTPSubmitter creates a submitter for the subscribe endpoint at url
func NewHTTPSubmitter(url, source string) *HTTPSubmitter {
	return &HTTPSubmitter{
		Endpoint: url,
		Source:   source,
		Client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Submit posts the lead. A non-2xx answer becomes an error carrying the
// response's "error" field, or ErrJoinFailed when there is none.
func (s *HTTPSubmitter) Submit(ctx context.Context, lead models.ContactSubmission) error {
	body, err := json.Marshal(services.SubscribeRequest{
		Email:   lead.Email,
		Name:    lead.Name,
		Company: lead.Company,
		Source:  s.Source,
	})
	if err != nil {
		return fmt.Errorf("failed to encode lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach subscribe endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var errBody struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &errBody) == nil && errBody.Error != "" {
		return errors.New(errBody.Error)
	}
	return ErrJoinFailed
}

// LeadSubscriber is the in-process subscription service
type LeadSubscriber interface {
	Subscribe(ctx context.Context, req services.SubscribeRequest) (*services.ListResult, error)
}

// ServiceSubmitter calls the subscription service directly, reporting failures
// the same way the HTTP endpoint would.
type ServiceSubmitter struct {
	Subscriber LeadSubscriber
	Source     string
}

// Submit forwards the lead to the subscriber
func (s ServiceSubmitter) Submit(ctx context.Context, lead models.ContactSubmission) error {
	result, err := s.Subscriber.Subscribe(ctx, services.SubscribeRequest{
		Email:   lead.Email,
		Name:    lead.Name,
		Company: lead.Company,
		Source:  s.Source,
	})
	if err != nil {
		return err
	}
	if !result.OK {
		return ErrJoinFailed
	}
	return nil
}

// DelaySubmitter is the beta application placeholder: it waits and succeeds
// without sending anything.
type DelaySubmitter struct {
	clock clock.Clock
	delay time.Duration
}

// NewDelaySubmitter returns a placeholder that waits delay on c. A nil clock
// means the real one; a non-positive delay means DefaultConfirmDelay.
func NewDelaySubmitter(c clock.Clock, delay time.Duration) *DelaySubmitter {
	if c == nil {
		c = clock.Real()
	}
	if delay <= 0 {
		delay = DefaultConfirmDelay
	}
	return &DelaySubmitter{clock: c, delay: delay}
}

// Submit waits for the delay or for ctx to end
func (d *DelaySubmitter) Submit(ctx context.Context, _ models.ContactSubmission) error {
	if !clock.Sleep(d.clock, d.delay, ctx.Done()) {
		return ctx.Err()
	}
	return nil
}

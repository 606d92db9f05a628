package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrMissingFields is returned when email, name or company is absent.
// The message is shown to users as-is.
var ErrMissingFields = errors.New("Missing required fields")

// SubscribeRequest is the payload accepted by the subscribe endpoint
type SubscribeRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	// Source tells which form produced the lead (waitlist, beta, cli). Optional.
	Source string `json:"source,omitempty"`
}

// LeadNotifier is told about every lead the provider accepted
type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, req SubscribeRequest, result *ListResult) error
}

// Subscriber forwards leads to the contact list. It only checks that the
// required fields are present; format checks happen in the forms.
type Subscriber struct {
	lister   ContactLister
	notifier LeadNotifier
	logger   *zap.Logger
}

// NewSubscriber wires a Subscriber. notifier may be nil.
func NewSubscriber(lister ContactLister, notifier LeadNotifier, logger *zap.Logger) *Subscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{lister: lister, notifier: notifier, logger: logger}
}

// Subscribe validates presence and makes exactly one provider call. The
// provider's verdict is returned untouched: a non-2xx answer is a result with
// OK=false, not an error. Transport failures come back as errors.
func (s *Subscriber) Subscribe(ctx context.Context, req SubscribeRequest) (*ListResult, error) {
	if req.Email == "" || req.Name == "" || req.Company == "" {
		return nil, ErrMissingFields
	}

	result, err := s.lister.SubmitContact(ctx, BrevoContact{
		Email:   req.Email,
		Name:    req.Name,
		Company: req.Company,
	})
	if err != nil {
		return nil, err
	}

	if !result.OK {
		s.logger.Warn("contact list rejected lead",
			zap.Int("status", result.Status),
			zap.String("source", req.Source),
		)
		return result, nil
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyNewLead(ctx, req, result); err != nil {
			s.logger.Error("failed to send lead notification", zap.Error(err))
		}
	}
	return result, nil
}

// Package leadform implements the lead-capture modal: field editing,
// validation, the single in-flight submission and, for beta applications,
// the survey confirmation step.
package leadform

import (
	"context"
	"errors"
	"maps"
	"sync"

	"proply_app_go/models"
	"proply_app_go/services"
)

// Status is where the modal is in its submission lifecycle
type Status int

const (
	Idle Status = iota
	Submitting
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "unknown"
}

// Stage is the visible step of the form. Only beta applications use SurveyStage.
type Stage int

const (
	FormStage Stage = iota
	SurveyStage
)

func (s Stage) String() string {
	if s == SurveyStage {
		return "survey"
	}
	return "form"
}

// ParseStage maps a stored stage name back to a Stage
func ParseStage(s string) Stage {
	if s == "survey" {
		return SurveyStage
	}
	return FormStage
}

// State is a snapshot of the modal
type State struct {
	Status Status
	Stage  Stage
	// Message is the inline error shown above the form (Status == Error)
	Message string
	// Errors holds per-field validation messages from the last submit
	Errors services.ValidationErrors
}

// ResetPolicy decides what Open does to a beta application left in the survey step
type ResetPolicy int

const (
	// RetainOnReopen keeps the survey step (and any error) across close/open.
	// Only a new Modal starts over.
	RetainOnReopen ResetPolicy = iota
	// ResetSurveyOnOpen returns to the form and clears the error on every open
	ResetSurveyOnOpen
)

var (
	// ErrBusy is returned while a submission is in flight
	ErrBusy = errors.New("leadform: submission in progress")
	// ErrFinished is returned once the modal reached Success
	ErrFinished = errors.New("leadform: already submitted")
	// ErrNotInSurvey is returned by survey actions outside the survey step
	ErrNotInSurvey = errors.New("leadform: not in survey step")
)

// fallbackMessage is shown when a failure carries no message of its own
const fallbackMessage = "Something went wrong"

// Observer is told about every state change, in order
type Observer func(State)

// Celebrator plays the success effect. It has no say in the outcome.
type Celebrator func(Burst)

// Modal is one lead-capture modal instance
type Modal struct {
	mu        sync.Mutex
	variant   models.FormVariant
	fields    models.ContactSubmission
	state     State
	open      bool
	submitter Submitter
	celebrate Celebrator
	burst     Burst
	observer  Observer
	policy    ResetPolicy
	surveyURL string
}

// Option configures a Modal
type Option func(*Modal)

// WithSubmitter sets what performs the submission: the network call for the
// waitlist, the confirmation for beta applications.
func WithSubmitter(s Submitter) Option {
	return func(m *Modal) { m.submitter = s }
}

// WithCelebrator sets the success effect and the burst it is given
func WithCelebrator(c Celebrator, b Burst) Option {
	return func(m *Modal) {
		m.celebrate = c
		m.burst = b
	}
}

// WithResetPolicy sets the reopen behavior
func WithResetPolicy(p ResetPolicy) Option {
	return func(m *Modal) { m.policy = p }
}

// WithObserver registers a state change callback
func WithObserver(o Observer) Option {
	return func(m *Modal) { m.observer = o }
}

// WithSurveyURL sets the external survey linked from the survey step
func WithSurveyURL(url string) Option {
	return func(m *Modal) { m.surveyURL = url }
}

// WithFields prefills the form, e.g. when restoring a modal from a request
func WithFields(s models.ContactSubmission) Option {
	return func(m *Modal) { m.fields = s }
}

// WithStage restores the visible step
func WithStage(s Stage) Option {
	return func(m *Modal) {
		if m.variant == models.FormBeta {
			m.state.Stage = s
		}
	}
}

// New returns a freshly mounted modal for the variant. Beta applications
// default to a placeholder confirmation that only waits; the waitlist has no
// default submitter and fails every submit until one is set.
func New(variant models.FormVariant, opts ...Option) *Modal {
	if variant != models.FormBeta {
		variant = models.FormWaitlist
	}
	m := &Modal{variant: variant, burst: DefaultBurst()}
	if variant == models.FormBeta {
		m.submitter = NewDelaySubmitter(nil, 0)
	} else {
		m.submitter = SubmitterFunc(func(context.Context, models.ContactSubmission) error {
			return errors.New("no submission target configured")
		})
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Variant returns the form variant
func (m *Modal) Variant() models.FormVariant {
	return m.variant
}

// SurveyURL returns the external survey link
func (m *Modal) SurveyURL() string {
	return m.surveyURL
}

// State returns a snapshot of the current state
func (m *Modal) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Fields returns the values as entered, untrimmed
func (m *Modal) Fields() models.ContactSubmission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fields
}

// SetField edits a form field. Inputs are disabled while submitting.
func (m *Modal) SetField(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Status == Submitting {
		return ErrBusy
	}
	m.fields.SetField(name, value)
	return nil
}

// IsOpen reports whether the modal is shown
func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Open shows the modal, applying the reset policy
func (m *Modal) Open() {
	m.mu.Lock()
	m.open = true
	if m.policy != ResetSurveyOnOpen || m.state.Status == Submitting || m.state.Status == Success {
		m.mu.Unlock()
		return
	}
	changed := m.state.Stage != FormStage || m.state.Status == Error
	m.state.Stage = FormStage
	m.state.Message = ""
	if m.state.Status == Error {
		m.state.Status = Idle
	}
	st := m.snapshotLocked()
	m.mu.Unlock()

	if changed {
		m.notify(st)
	}
}

// Close hides the modal; it never resets anything
func (m *Modal) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
}

// Submit validates the form. Invalid input stays Idle with field errors and
// nothing is sent. A valid waitlist form is sent through the submitter; a
// valid beta application moves on to the survey step instead.
func (m *Modal) Submit(ctx context.Context) error {
	m.mu.Lock()
	if err := m.checkIdleLocked(); err != nil {
		m.mu.Unlock()
		return err
	}

	m.state.Message = ""
	if m.state.Status == Error {
		m.state.Status = Idle
	}
	errs := services.ValidateLead(m.variant, m.fields)
	if !errs.OK() {
		m.state.Errors = errs
		st := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(st)
		return nil
	}
	m.state.Errors = nil

	if m.variant == models.FormBeta {
		m.state.Stage = SurveyStage
		st := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(st)
		return nil
	}

	return m.runLocked(ctx)
}

// ConfirmSurvey is the applicant's claim that the survey is done. Nothing
// checks the survey itself, but the form fields are validated again since
// the survey step can be reached without passing through Submit. Invalid
// fields send the modal back to the form with their errors.
func (m *Modal) ConfirmSurvey(ctx context.Context) error {
	m.mu.Lock()
	if err := m.checkIdleLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.state.Stage != SurveyStage {
		m.mu.Unlock()
		return ErrNotInSurvey
	}
	m.state.Message = ""
	errs := services.ValidateLead(m.variant, m.fields)
	if !errs.OK() {
		m.state.Errors = errs
		m.state.Stage = FormStage
		st := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(st)
		return nil
	}
	m.state.Errors = nil
	return m.runLocked(ctx)
}

// Back leaves the survey step for the form
func (m *Modal) Back() error {
	m.mu.Lock()
	if err := m.checkIdleLocked(); err != nil {
		m.mu.Unlock()
		return err
	}
	if m.state.Stage != SurveyStage {
		m.mu.Unlock()
		return ErrNotInSurvey
	}
	m.state.Stage = FormStage
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)
	return nil
}

func (m *Modal) checkIdleLocked() error {
	switch m.state.Status {
	case Submitting:
		return ErrBusy
	case Success:
		return ErrFinished
	}
	return nil
}

// runLocked performs the submission. It is entered with m.mu held and
// releases it while the submitter runs.
func (m *Modal) runLocked(ctx context.Context) error {
	m.state.Status = Submitting
	lead := m.fields.Trimmed()
	submitter := m.submitter
	st := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(st)

	err := submitter.Submit(ctx, lead)

	m.mu.Lock()
	if err != nil {
		m.state.Status = Error
		m.state.Message = err.Error()
		if m.state.Message == "" {
			m.state.Message = fallbackMessage
		}
	} else {
		m.state.Status = Success
	}
	st = m.snapshotLocked()
	celebrate, burst := m.celebrate, m.burst
	m.mu.Unlock()

	m.notify(st)
	if err == nil && celebrate != nil {
		celebrate(burst)
	}
	return nil
}

func (m *Modal) snapshotLocked() State {
	st := m.state
	if st.Errors != nil {
		st.Errors = maps.Clone(st.Errors)
	}
	return st
}

func (m *Modal) notify(st State) {
	if m.observer != nil {
		m.observer(st)
	}
}

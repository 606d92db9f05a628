package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"proply_app_go/config"
	"proply_app_go/middleware"
	"proply_app_go/models"
	"proply_app_go/services/leadform"
	"proply_app_go/templates/components"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"
)

// LeadModalHandler serves the htmx lead modals. Every request rebuilds the
// modal from the posted fields, runs one transition and renders the result.
type LeadModalHandler struct {
	content   *config.Content
	submitter leadform.Submitter
	confirm   leadform.Submitter
	policy    leadform.ResetPolicy
}

// NewLeadModalHandler wires waitlist submissions to subscriber. Beta
// confirmations only wait confirmDelay.
func NewLeadModalHandler(content *config.Content, subscriber leadform.LeadSubscriber, confirmDelay time.Duration, policy leadform.ResetPolicy) *LeadModalHandler {
	return &LeadModalHandler{
		content:   content,
		submitter: leadform.ServiceSubmitter{Subscriber: subscriber, Source: string(models.FormWaitlist)},
		confirm:   leadform.NewDelaySubmitter(nil, confirmDelay),
		policy:    policy,
	}
}

// FreshView returns the view of a newly mounted modal
func (h *LeadModalHandler) FreshView(variant models.FormVariant) components.ModalView {
	return h.view(leadform.New(variant, leadform.WithSurveyURL(h.content.SurveyURL)), nil)
}

// Show handles GET /leads/:variant, a freshly mounted modal
func (h *LeadModalHandler) Show(c echo.Context) error {
	variant, ok := models.ParseFormVariant(c.Param("variant"))
	if !ok {
		return echo.ErrNotFound
	}
	return h.renderModal(c, h.FreshView(variant))
}

// Open handles POST /leads/:variant/open and applies the reopen policy
func (h *LeadModalHandler) Open(c echo.Context) error {
	variant, ok := models.ParseFormVariant(c.Param("variant"))
	if !ok {
		return echo.ErrNotFound
	}
	return h.run(c, variant, func(_ context.Context, m *leadform.Modal) error {
		m.Open()
		return nil
	})
}

// SubmitWaitlist handles POST /leads/waitlist
func (h *LeadModalHandler) SubmitWaitlist(c echo.Context) error {
	return h.run(c, models.FormWaitlist, submit)
}

// SubmitBeta handles POST /leads/beta
func (h *LeadModalHandler) SubmitBeta(c echo.Context) error {
	return h.run(c, models.FormBeta, submit)
}

// ConfirmBeta handles POST /leads/beta/confirm
func (h *LeadModalHandler) ConfirmBeta(c echo.Context) error {
	return h.run(c, models.FormBeta, func(ctx context.Context, m *leadform.Modal) error {
		return m.ConfirmSurvey(ctx)
	})
}

// BackBeta handles POST /leads/beta/back
func (h *LeadModalHandler) BackBeta(c echo.Context) error {
	return h.run(c, models.FormBeta, func(_ context.Context, m *leadform.Modal) error {
		return m.Back()
	})
}

func submit(ctx context.Context, m *leadform.Modal) error {
	return m.Submit(ctx)
}

func (h *LeadModalHandler) run(c echo.Context, variant models.FormVariant, transition func(context.Context, *leadform.Modal) error) error {
	logger := middleware.Logger(c).With(zap.String("variant", string(variant)))

	var burst *leadform.Burst
	m := h.restore(c, variant,
		leadform.WithCelebrator(func(b leadform.Burst) { burst = &b }, leadform.DefaultBurst().WithColors(h.content.Palette)),
		leadform.WithObserver(func(st leadform.State) {
			logger.Debug("lead modal transition",
				zap.Stringer("status", st.Status),
				zap.Stringer("stage", st.Stage),
			)
		}),
	)

	if err := transition(c.Request().Context(), m); err != nil {
		if !errors.Is(err, leadform.ErrNotInSurvey) {
			return err
		}
		// A stale page can confirm after the modal left the survey. Rendering
		// the current step keeps the response swappable by htmx.
		logger.Info("survey confirm outside the survey step")
	}

	if st := m.State(); st.Status == leadform.Error {
		logger.Warn("lead submission failed", zap.String("message", st.Message))
	}
	return h.renderModal(c, h.view(m, burst))
}

func (h *LeadModalHandler) restore(c echo.Context, variant models.FormVariant, opts ...leadform.Option) *leadform.Modal {
	var fields models.ContactSubmission
	for _, name := range []string{"email", "name", "company", "phone"} {
		fields.SetField(name, c.FormValue(name))
	}

	submitter := h.submitter
	if variant == models.FormBeta {
		submitter = h.confirm
	}

	return leadform.New(variant, append([]leadform.Option{
		leadform.WithFields(fields),
		leadform.WithStage(leadform.ParseStage(c.FormValue("stage"))),
		leadform.WithSubmitter(submitter),
		leadform.WithResetPolicy(h.policy),
		leadform.WithSurveyURL(h.content.SurveyURL),
	}, opts...)...)
}

func (h *LeadModalHandler) view(m *leadform.Modal, burst *leadform.Burst) components.ModalView {
	return components.ModalView{
		Variant:   m.Variant(),
		State:     m.State(),
		Fields:    m.Fields(),
		Brand:     h.content.Brand,
		LogoURL:   h.content.LogoURL,
		SurveyURL: m.SurveyURL(),
		Benefits:  h.content.BetaBenefits,
		Burst:     burst,
	}
}

func (h *LeadModalHandler) renderModal(c echo.Context, v components.ModalView) error {
	return render(c, http.StatusOK, components.Templ(func(ctx context.Context) g.Node {
		return components.LeadModal(ctx, v)
	}))
}

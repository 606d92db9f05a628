package handlers

import (
	"net/http"

	"proply_app_go/config"
	"proply_app_go/middleware"
	"proply_app_go/models"
	"proply_app_go/services/onboarding"
	"proply_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// LandingHandler serves the landing page
type LandingHandler struct {
	content     *config.Content
	modals      *LeadModalHandler
	timings     onboarding.Timings
	resetOnOpen bool
}

// NewLandingHandler creates the landing page handler
func NewLandingHandler(content *config.Content, modals *LeadModalHandler, resetOnOpen bool) *LandingHandler {
	return &LandingHandler{
		content:     content,
		modals:      modals,
		timings:     onboarding.DefaultTimings(),
		resetOnOpen: resetOnOpen,
	}
}

// Show renders the page. The intro timeline, jitter included, is drawn per
// request and embedded for the page script.
func (h *LandingHandler) Show(c echo.Context) error {
	view := pages.LandingView{
		Content:     h.content,
		Plan:        onboarding.PlanTyping(h.content.TypedSentence, h.timings, nil),
		Nonce:       middleware.GetNonce(c.Request().Context()),
		Locale:      middleware.GetLocale(c),
		CSRFToken:   middleware.GetCSRFToken(c),
		ResetOnOpen: h.resetOnOpen,
		Waitlist:    h.modals.FreshView(models.FormWaitlist),
		Beta:        h.modals.FreshView(models.FormBeta),
	}
	return render(c, http.StatusOK, pages.Landing(view))
}

package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"proply_app_go/config"
	"proply_app_go/services"
	"proply_app_go/services/leadform"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModalHandler(result *services.ListResult, err error, policy leadform.ResetPolicy) (*LeadModalHandler, *stubLister) {
	sub, lister := newTestSubscriber(result, err)
	return NewLeadModalHandler(config.DefaultContent(), sub, time.Millisecond, policy), lister
}

func postForm(t *testing.T, path string, values url.Values, params map[string]string, handler echo.HandlerFunc) (int, string, error) {
	t.Helper()
	_, c, rec := setupEcho(http.MethodPost, path, strings.NewReader(values.Encode()))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for name, value := range params {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	err := handler(c)
	return rec.Code, rec.Body.String(), err
}

func waitlistValues() url.Values {
	return url.Values{
		"email":   {"valid-email@example.com"},
		"name":    {"Ana"},
		"company": {"Acme"},
	}
}

func betaValues() url.Values {
	v := waitlistValues()
	v.Set("phone", "+1 555 0100")
	return v
}

func TestLeadModalShow(t *testing.T) {
	h, _ := newTestModalHandler(nil, nil, leadform.RetainOnReopen)

	t.Run("Waitlist", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/leads/waitlist", nil)
		c.SetParamNames("variant")
		c.SetParamValues("waitlist")

		require.NoError(t, h.Show(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `id="lead-modal-waitlist"`)
		assert.Contains(t, body, `data-status="idle"`)
		assert.Contains(t, body, "Join the Waitlist")
		assert.NotContains(t, body, `name="phone"`)
	})

	t.Run("Beta", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/leads/beta", nil)
		c.SetParamNames("variant")
		c.SetParamValues("beta")

		require.NoError(t, h.Show(c))
		body := rec.Body.String()
		assert.Contains(t, body, `data-stage="form"`)
		assert.Contains(t, body, `name="phone"`)
		assert.Contains(t, body, "Beta Tester Benefits")
	})

	t.Run("Unknown variant", func(t *testing.T) {
		_, c, _ := setupEcho(http.MethodGet, "/leads/other", nil)
		c.SetParamNames("variant")
		c.SetParamValues("other")

		assert.ErrorIs(t, h.Show(c), echo.ErrNotFound)
	})
}

func TestLeadModalSubmitWaitlist(t *testing.T) {
	t.Run("Success plays the burst", func(t *testing.T) {
		h, lister := newTestModalHandler(&services.ListResult{OK: true, Status: 201}, nil, leadform.RetainOnReopen)

		code, body, err := postForm(t, "/leads/waitlist", waitlistValues(), nil, h.SubmitWaitlist)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, `data-status="success"`)
		assert.Contains(t, body, "data-burst=")
		assert.Contains(t, body, "particleCount")
		assert.Contains(t, body, "You&#39;re on the list!")
		require.Len(t, lister.contacts, 1)
	})

	t.Run("Invalid keeps the entered values", func(t *testing.T) {
		h, lister := newTestModalHandler(&services.ListResult{OK: true, Status: 201}, nil, leadform.RetainOnReopen)
		values := waitlistValues()
		values.Set("email", "not-an-email")

		_, body, err := postForm(t, "/leads/waitlist", values, nil, h.SubmitWaitlist)

		require.NoError(t, err)
		assert.Contains(t, body, `data-status="idle"`)
		assert.Contains(t, body, "Please enter a valid email")
		assert.Contains(t, body, `value="not-an-email"`)
		assert.Contains(t, body, `value="Acme"`)
		assert.NotContains(t, body, "data-burst")
		assert.Empty(t, lister.contacts)
	})

	t.Run("Provider rejection shows an error", func(t *testing.T) {
		h, _ := newTestModalHandler(&services.ListResult{OK: false, Status: 400}, nil, leadform.RetainOnReopen)

		_, body, err := postForm(t, "/leads/waitlist", waitlistValues(), nil, h.SubmitWaitlist)

		require.NoError(t, err)
		assert.Contains(t, body, `data-status="error"`)
		assert.Contains(t, body, `role="alert"`)
		assert.Contains(t, body, "Failed to join waitlist")
		assert.Contains(t, body, `value="valid-email@example.com"`)
	})
}

func TestLeadModalBetaFlow(t *testing.T) {
	h, lister := newTestModalHandler(&services.ListResult{OK: true, Status: 201}, nil, leadform.RetainOnReopen)

	t.Run("Valid form opens the survey", func(t *testing.T) {
		_, body, err := postForm(t, "/leads/beta", betaValues(), nil, h.SubmitBeta)

		require.NoError(t, err)
		assert.Contains(t, body, `data-stage="survey"`)
		assert.Contains(t, body, `href="https://form.typeform.com/to/EMKcyYDX"`)
		assert.Contains(t, body, `target="_blank"`)
		assert.Contains(t, body, `name="stage" value="survey"`)
		assert.Contains(t, body, `value="+1 555 0100"`)
	})

	t.Run("Missing phone stays on the form", func(t *testing.T) {
		_, body, err := postForm(t, "/leads/beta", waitlistValues(), nil, h.SubmitBeta)

		require.NoError(t, err)
		assert.Contains(t, body, `data-stage="form"`)
		assert.Contains(t, body, "Phone number is required")
	})

	t.Run("Back returns to the form", func(t *testing.T) {
		values := betaValues()
		values.Set("stage", "survey")

		_, body, err := postForm(t, "/leads/beta/back", values, nil, h.BackBeta)

		require.NoError(t, err)
		assert.Contains(t, body, `data-stage="form"`)
		assert.Contains(t, body, `value="Ana"`)
	})

	t.Run("Confirm finishes without a network call", func(t *testing.T) {
		values := betaValues()
		values.Set("stage", "survey")

		_, body, err := postForm(t, "/leads/beta/confirm", values, nil, h.ConfirmBeta)

		require.NoError(t, err)
		assert.Contains(t, body, `data-status="success"`)
		assert.Contains(t, body, "Application Submitted!")
		assert.Contains(t, body, "data-burst=")
		assert.Empty(t, lister.contacts)
	})

	t.Run("Confirm outside the survey renders the form", func(t *testing.T) {
		code, body, err := postForm(t, "/leads/beta/confirm", betaValues(), nil, h.ConfirmBeta)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, `data-stage="form"`)
		assert.NotContains(t, body, `data-status="success"`)
	})

	t.Run("Confirm with missing fields goes back to the form", func(t *testing.T) {
		before := len(lister.contacts)

		code, body, err := postForm(t, "/leads/beta/confirm", url.Values{"stage": {"survey"}}, nil, h.ConfirmBeta)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, `data-stage="form"`)
		assert.NotContains(t, body, `data-status="success"`)
		assert.NotContains(t, body, "data-burst=")
		assert.Contains(t, body, "Email is required")
		assert.Contains(t, body, "Phone number is required")
		assert.Len(t, lister.contacts, before)
	})
}

func TestLeadModalOpen(t *testing.T) {
	values := betaValues()
	values.Set("stage", "survey")
	params := map[string]string{"variant": "beta"}

	t.Run("Retain", func(t *testing.T) {
		h, _ := newTestModalHandler(nil, nil, leadform.RetainOnReopen)

		_, body, err := postForm(t, "/leads/beta/open", values, params, h.Open)

		require.NoError(t, err)
		assert.Contains(t, body, `data-stage="survey"`)
	})

	t.Run("Reset", func(t *testing.T) {
		h, _ := newTestModalHandler(nil, nil, leadform.ResetSurveyOnOpen)

		_, body, err := postForm(t, "/leads/beta/open", values, params, h.Open)

		require.NoError(t, err)
		assert.Contains(t, body, `data-stage="form"`)
		assert.Contains(t, body, `value="valid-email@example.com"`)
	})

	t.Run("Unknown variant", func(t *testing.T) {
		h, _ := newTestModalHandler(nil, nil, leadform.RetainOnReopen)

		_, _, err := postForm(t, "/leads/x/open", values, map[string]string{"variant": "x"}, h.Open)

		assert.ErrorIs(t, err, echo.ErrNotFound)
	})
}

package handlers

import (
	"context"
	"net/http"
	"testing"

	"proply_app_go/config"
	"proply_app_go/middleware"
	"proply_app_go/services/leadform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingHandler(t *testing.T) {
	content := config.DefaultContent()
	modals, _ := newTestModalHandler(nil, nil, leadform.RetainOnReopen)

	t.Run("Renders page", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/", nil)
		ctx := context.WithValue(c.Request().Context(), middleware.NonceKey, "test-nonce")
		c.SetRequest(c.Request().WithContext(ctx))
		c.Set("csrf", "csrf-token")

		require.NoError(t, NewLandingHandler(content, modals, false).Show(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `id="loading-screen"`)
		assert.Contains(t, body, `id="typing-text"`)
		assert.Contains(t, body, `id="intro-plan"`)
		assert.Contains(t, body, `nonce="test-nonce"`)
		assert.Contains(t, body, `id="lead-modal-waitlist"`)
		assert.Contains(t, body, `id="lead-modal-beta"`)
		assert.Contains(t, body, `data-reset-policy="retain"`)
		assert.Contains(t, body, `hx-headers="{&#34;X-CSRF-Token&#34;:&#34;csrf-token&#34;}"`)
		assert.Contains(t, body, content.Headline)
	})

	t.Run("Reset policy", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/", nil)

		require.NoError(t, NewLandingHandler(content, modals, true).Show(c))
		assert.Contains(t, rec.Body.String(), `data-reset-policy="reset"`)
		assert.NotContains(t, rec.Body.String(), "hx-headers")
	})
}

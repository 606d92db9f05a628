package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"proply_app_go/middleware"
	"proply_app_go/services"
	"proply_app_go/services/leadform"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const maxSubscribeBody = 64 << 10

type subscribeResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Brevo   any  `json:"brevo"`
}

// SubscribeHandler handles POST /api/subscribe. The provider's status and
// body are passed through; only missing fields are rejected here.
func SubscribeHandler(subscriber leadform.LeadSubscriber) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := middleware.Logger(c)

		var req services.SubscribeRequest
		body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxSubscribeBody))
		if err != nil {
			return subscribeError(c, err)
		}
		// An empty body is read as {} and fails the presence check
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				return subscribeError(c, err)
			}
		}

		result, err := subscriber.Subscribe(c.Request().Context(), req)
		if errors.Is(err, services.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if err != nil {
			logger.Error("subscription failed", zap.Error(err))
			return subscribeError(c, err)
		}

		status := result.Status
		if status < 100 || status > 999 {
			status = http.StatusBadGateway
		}
		if !bodyAllowed(status) {
			return c.NoContent(status)
		}
		return c.JSON(status, subscribeResponse{
			Success: result.OK,
			Status:  result.Status,
			Brevo:   result.Data,
		})
	}
}

func subscribeError(c echo.Context, err error) error {
	msg := err.Error()
	if msg == "" {
		msg = "Unexpected server error"
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
}

// bodyAllowed reports whether a response with this status may carry a body
func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

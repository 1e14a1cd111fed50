package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartcanteen/canteen-api/internal/logging"
	"github.com/smartcanteen/canteen-api/internal/service/auth"
)

type AuthHandler struct {
	Svc *auth.Service
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}

	user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmailFormat):
			l.Warn("login_failed", "status", 400, "reason", "invalid_email_format")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid email format"})
		case errors.Is(err, auth.ErrInvalidCredentials):
			l.Warn("login_failed", "status", 401, "reason", "invalid_credentials")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
		case errors.Is(err, auth.ErrUserNotFound):
			l.Warn("login_failed", "status", 401, "reason", "user_not_found")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "User not found"})
		default:
			l.Error("login_failed", "status", 500, "reason", "db_error", "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
		}
	}

	l.Info("login_success", "user_id", user.ID, "role", user.Role)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

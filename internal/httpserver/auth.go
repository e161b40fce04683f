package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/shop-backend/internal/logging"
	"github.com/avolkov/shop-backend/internal/mykafka"
	"github.com/avolkov/shop-backend/internal/repo"
	"github.com/avolkov/shop-backend/internal/service"
	"github.com/avolkov/shop-backend/internal/transport"
)

type UserHTTP struct {
	Svc      *service.UserService
	Producer *mykafka.Producer
}

func (h *UserHTTP) CheckEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.check_email")

	var req transport.CheckEmailRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("check_email_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	exists, err := h.Svc.CheckEmailExists(ctx, req.Email)
	if err != nil {
		l.Error("check_email_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	return c.JSON(http.StatusOK, exists)
}

func (h *UserHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	if err := h.Svc.Signup(ctx, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("signup_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, false)
		case errors.Is(err, service.ErrConflict):
			l.Warn("signup_error", "status", 401, "reason", "email taken")
			return c.JSON(http.StatusUnauthorized, false)
		default:
			l.Error("signup_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "user_events", map[string]any{
		"type":  "user_signed_up",
		"email": req.Email,
	})
	l.Info("signup_success")
	return c.JSON(http.StatusCreated, true)
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	token, user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_error", "status", 403, "reason", "invalid email or password")
			return c.JSON(http.StatusForbidden, false)
		}
		l.Error("login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}

	publish(c, h.Producer, "user_events", map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
	})
	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{AccessToken: token})
}

func (h *UserHTTP) GetDetails(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.details")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("details_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	profile, err := h.Svc.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("details_error", "status", 404, "user_id", userID)
			return c.JSON(http.StatusNotFound, false)
		}
		l.Error("details_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, false)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.change_password")

	userID, err := GetID(c)
	if err != nil {
		l.Warn("change_password_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_password_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, false)
	}

	if err := h.Svc.ChangePassword(ctx, userID, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("change_password_error", "status", 400, "error", err)
			return c.JSON(http.StatusBadRequest, false)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("change_password_error", "status", 404, "user_id", userID)
			return c.JSON(http.StatusNotFound, false)
		default:
			l.Error("change_password_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "user_events", map[string]any{
		"type":   "password_changed",
		"userID": userID,
	})
	l.Info("change_password_success", "user_id", userID)
	return c.JSON(http.StatusOK, true)
}

func (h *UserHTTP) SetAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.set_admin")

	callerID, err := GetID(c)
	if err != nil {
		l.Warn("set_admin_error", "status", 401, "error", err)
		return c.JSON(http.StatusUnauthorized, false)
	}

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || targetID <= 0 {
		l.Warn("set_admin_error", "status", 400, "reason", "invalid id")
		return c.JSON(http.StatusBadRequest, false)
	}

	if err := h.Svc.SetAdminPrivileges(ctx, callerID, IsAdmin(c), uint(targetID)); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			l.Warn("set_admin_error", "status", 401, "caller_id", callerID, "target_id", targetID)
			return c.JSON(http.StatusUnauthorized, false)
		case errors.Is(err, service.ErrNotFound):
			l.Warn("set_admin_error", "status", 404, "target_id", targetID)
			return c.JSON(http.StatusNotFound, false)
		default:
			l.Error("set_admin_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, false)
		}
	}

	publish(c, h.Producer, "user_events", map[string]any{
		"type":     "admin_toggled",
		"userID":   callerID,
		"targetID": targetID,
	})
	l.Info("set_admin_success", "target_id", targetID)
	return c.JSON(http.StatusOK, true)
}

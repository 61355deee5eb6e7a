package handler

import (
	"net/http"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/tenantadmin"
	"github.com/githuax/zeduno-sub008/pkg/jwtutil"
	"github.com/githuax/zeduno-sub008/pkg/logger"
	"github.com/githuax/zeduno-sub008/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	Svc *tenantadmin.Service
	JWT *jwtutil.JWTUtil
}

// Register creates a staff account under an existing tenant
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var input tenantadmin.RegisterInput
	if err := c.Bind(&input); err != nil {
		log.Warn("failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "invalid request"})
	}

	u, err := h.Svc.RegisterUser(c.Request().Context(), input)
	if err != nil {
		prometheus.RecordAuthError("register_failure")
		return apperr.Respond(c, "auth.register", err)
	}

	log.Info("user registered", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
	return c.JSON(http.StatusCreated, u)
}

// Login verifies credentials and issues a JWT carrying the tenant context
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, apperr.Response{Success: false, Message: "email and password are required"})
	}

	u, t, err := h.Svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		prometheus.RecordAuthError("login_failure")
		return apperr.Respond(c, "auth.login", err)
	}

	tenantName := ""
	if t != nil {
		tenantName = t.Name
	}

	token, err := h.JWT.GenerateToken(u.Email, u.ID, u.TenantID, tenantName, u.Role)
	if err != nil {
		return apperr.Respond(c, "auth.login", err)
	}

	log.Info("user logged in", zap.Uint("user_id", u.ID), zap.String("role", u.Role))
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user":  u,
	})
}

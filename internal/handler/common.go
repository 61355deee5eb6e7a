package handler

import (
	"net/http"
	"strconv"

	"github.com/githuax/zeduno-sub008/internal/apperr"
	"github.com/githuax/zeduno-sub008/internal/tenantscope"
	"github.com/githuax/zeduno-sub008/pkg/jwtutil"
	"github.com/labstack/echo/v4"
)

// callerFrom extracts the authenticated caller from the claims stored by the
// auth middleware.
func callerFrom(c echo.Context) (tenantscope.Caller, bool) {
	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	if !ok {
		return tenantscope.Caller{}, false
	}
	return tenantscope.FromClaims(claims), true
}

// unauthorized is the response when no valid claims are present.
func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, apperr.Response{Success: false, Message: "authentication required"})
}

// idParam parses the :id path parameter.
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// tenantQuery parses the optional ?tenant_id= query parameter. Only
// superadmin callers get to use it; the scope guard ignores it for everyone
// else.
func tenantQuery(c echo.Context) *uint {
	v := c.QueryParam("tenant_id")
	if v == "" {
		return nil
	}
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(id)
	return &u
}

// intQuery parses an integer query parameter with a default.
func intQuery(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

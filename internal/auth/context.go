package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CurrentUser resolves the authenticated caller's claims from the echo
// context. It is the single identity gate: every handler behind the JWT
// middleware obtains identity and role exclusively through it.
func CurrentUser(c echo.Context) (*Claims, error) {
	claims, ok := c.Get("user").(*Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	return claims, nil
}

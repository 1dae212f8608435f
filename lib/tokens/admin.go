package tokens

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminTokenMiddleware guards the ledger-engine endpoints (raw transaction
// manipulation, distribution runs, reconciliation) with a static bearer
// token. With no ADMIN_TOKEN configured the guard is disabled and those
// endpoints rely on plain JWT auth.
func AdminTokenMiddleware(token string) echo.MiddlewareFunc {
	if token == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return middleware.KeyAuth(func(auth string, c echo.Context) (bool, error) {
		return auth == token, nil
	})
}

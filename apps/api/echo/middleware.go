package echoapi

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core"
)

const apiKeyHeader = "X-Api-Key"

// staffMiddleware guards catalog management endpoints behind the deployment's
// admin API key.
func staffMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			key := ctx.Request().Header.Get(apiKeyHeader)
			if key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(conf.AdminAPIKey)) == 1 {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/infocast/infocast/internal/stub/metrics"
)

// TokenHeader is the custom auth header the contract uses instead of
// Authorization.
const TokenHeader = "x-auth-token"

// Auth validates the token from the x-auth-token header and injects the
// caller's identity into the request context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
			}

			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if sub == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_subject").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
			}

			c.Set("userID", sub)
			c.Set("role", role)

			return next(c)
		}
	}
}

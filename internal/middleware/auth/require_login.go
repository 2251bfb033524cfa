package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/minhtd/product-catalog/internal/tokens"
)

// RequireAuth rejects the request before the handler runs unless the
// Authorization header carries a well-formed, unexpired bearer token signed
// with the configured secret. There are no roles; authentication is binary.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningMethod: "HS256",
		SigningKey:    secret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(tokens.AccessClaims)
		},
		SuccessHandler: func(c echo.Context) {
			if claims := CurrentClaims(c); claims != nil {
				setUserContext(c, claims)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		},
	})
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	if id, err := claims.UserID(); err == nil {
		c.Set("userID", id)
	}
	c.Set("username", claims.Username)
}

// CurrentClaims returns the decoded token claims, or nil on an
// unauthenticated route.
func CurrentClaims(c echo.Context) *tokens.AccessClaims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*tokens.AccessClaims)
	if !ok {
		return nil
	}
	return claims
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Skotchmaster/bookbazaar/pkg/tokens"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

var ErrNoUser = errors.New("no authenticated user")

type AuthMiddleware struct {
	JWTSecret    []byte
	CookieSecure bool
}

func NewAuthMiddleware(secret []byte, cookieSecure bool) *AuthMiddleware {
	return &AuthMiddleware{JWTSecret: secret, CookieSecure: cookieSecure}
}

// RequireAuth accepts the access token from its cookie or an Authorization bearer header.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			c.SetCookie(tokens.DeleteCookie(m.CookieSecure))
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated").SetInternal(err)
		}
		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated").SetInternal(err)
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxUsername, claims.Username)
		return next(c)
	}
}

func tokenFromRequest(c echo.Context) string {
	if ck, err := c.Cookie(tokens.CookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if v, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// UserID returns the id RequireAuth stored on the context.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get(CtxUserID).(uint)
	if !ok || id == 0 {
		return 0, ErrNoUser
	}
	return id, nil
}

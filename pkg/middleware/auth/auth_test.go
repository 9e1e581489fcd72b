package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/bookbazaar/pkg/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func run(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, uint, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen uint
	h := NewAuthMiddleware(secret, false).RequireAuth(func(c echo.Context) error {
		id, err := UserID(c)
		require.NoError(t, err)
		seen = id
		return c.NoContent(http.StatusOK)
	})
	return rec, seen, h(c)
}

func TestRequireAuth_Cookie(t *testing.T) {
	tok, err := tokens.NewAccessToken(3, "bob", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: tokens.CookieName, Value: tok})

	rec, id, err := run(t, req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), id)
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	tok, err := tokens.NewAccessToken(5, "carol", time.Now().Add(time.Hour), secret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)

	_, id, err := run(t, req)
	require.NoError(t, err)
	assert.Equal(t, uint(5), id)
}

func TestRequireAuth_Rejects(t *testing.T) {
	expired, err := tokens.NewAccessToken(5, "carol", time.Now().Add(-time.Hour), secret)
	require.NoError(t, err)

	for name, req := range map[string]*http.Request{
		"missing": httptest.NewRequest(http.MethodGet, "/", nil),
		"expired": func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: tokens.CookieName, Value: expired})
			return r
		}(),
		"garbage": func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set(echo.HeaderAuthorization, "Bearer not.a.jwt")
			return r
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := run(t, req)
			he, ok := err.(*echo.HTTPError)
			require.True(t, ok, "expected HTTPError")
			assert.Equal(t, http.StatusUnauthorized, he.Code)
		})
	}
}

func TestUserID_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := UserID(c)
	assert.ErrorIs(t, err, ErrNoUser)
}

package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer() *echo.Echo {
	e := echo.New()
	e.Use(Middleware(Config{SkipPrefixes: []string{"/health"}}))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/api/books", ok)
	e.POST("/api/cart", ok)
	e.POST("/health/live", ok)
	return e
}

func TestCSRF_SafeMethodIssuesToken(t *testing.T) {
	e := newServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Header().Get("X-CSRF-Token")
	assert.NotEmpty(t, token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "XSRF-TOKEN", cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
}

func TestCSRF_UnsafeMethod(t *testing.T) {
	e := newServer()

	post := func(cookie, header, origin string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/cart", nil)
		req.Host = "shop.test"
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: cookie})
		}
		if header != "" {
			req.Header.Set("X-CSRF-Token", header)
		}
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post("tok", "tok", "http://shop.test"))
	assert.Equal(t, http.StatusForbidden, post("tok", "other", "http://shop.test"))
	assert.Equal(t, http.StatusForbidden, post("tok", "", "http://shop.test"))
	assert.Equal(t, http.StatusForbidden, post("tok", "tok", "http://evil.test"))
	assert.Equal(t, http.StatusForbidden, post("tok", "tok", ""))
}

func TestCSRF_AllowCrossOrigin(t *testing.T) {
	e := echo.New()
	e.Use(Middleware(Config{AllowCrossOrigin: true}))
	e.POST("/api/cart", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "tok"})
	req.Header.Set("X-CSRF-Token", "tok")
	req.Header.Set("Origin", "http://elsewhere.test")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRF_SkipPrefixes(t *testing.T) {
	e := newServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

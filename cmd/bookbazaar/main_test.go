package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func corsServer(origins []string) *echo.Echo {
	e := echo.New()
	e.Use(corsMiddleware(origins))
	e.GET("/api/books", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func getWithOrigin(e *echo.Echo, origin string) http.Header {
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	req.Header.Set(echo.HeaderOrigin, origin)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Header()
}

func TestCORS_NoOriginsNeverAllowsCredentials(t *testing.T) {
	h := getWithOrigin(corsServer(nil), "https://evil.example")
	assert.Equal(t, "*", h.Get(echo.HeaderAccessControlAllowOrigin))
	assert.Empty(t, h.Get(echo.HeaderAccessControlAllowCredentials))
}

func TestCORS_ConfiguredOrigins(t *testing.T) {
	e := corsServer([]string{"https://shop.example"})

	h := getWithOrigin(e, "https://shop.example")
	assert.Equal(t, "https://shop.example", h.Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", h.Get(echo.HeaderAccessControlAllowCredentials))

	h = getWithOrigin(e, "https://evil.example")
	assert.Empty(t, h.Get(echo.HeaderAccessControlAllowOrigin))
	assert.Empty(t, h.Get(echo.HeaderAccessControlAllowCredentials))
}

package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookbazaar/pkg/logging"
	middleware "github.com/Skotchmaster/bookbazaar/pkg/middleware/auth"
	"github.com/Skotchmaster/bookbazaar/pkg/middleware/csrf"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP

	JWTSecret    []byte
	CookieSecure bool
	CSRFEnabled  bool

	// Ready backs /health/ready; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx := c.Request().Context()
		if err := d.Ready(ctx); err != nil {
			logging.FromContext(ctx).Warn("not_ready", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewAuthMiddleware(d.JWTSecret, d.CookieSecure)

	api := e.Group("/api")
	if d.CSRFEnabled {
		cfg := csrf.DefaultConfig()
		cfg.Secure = d.CookieSecure
		cfg.SkipPrefixes = []string{"/api/login", "/api/register"}
		api.Use(csrf.Middleware(cfg))
	}

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/logout", d.AuthHandler.LogOut)

	api.GET("/books", d.CatalogHandler.ListBooks)
	api.GET("/books/:id", d.CatalogHandler.GetBook)
	api.GET("/book-attributes", d.CatalogHandler.Attributes)

	private := api.Group("")
	private.Use(authMW.RequireAuth)

	private.GET("/user", d.AuthHandler.Me)
	private.PATCH("/user", d.AuthHandler.UpdateProfile)

	private.POST("/books", d.CatalogHandler.CreateBook)
	private.PUT("/books/:id", d.CatalogHandler.UpdateBook)
	private.PATCH("/books/:id", d.CatalogHandler.UpdateBook)
	private.DELETE("/books/:id", d.CatalogHandler.DeleteBook)
	private.GET("/my/books", d.CatalogHandler.MyBooks)

	private.GET("/cart", d.CartHandler.GetCart)
	private.GET("/cart/summary", d.CartHandler.Summary)
	private.POST("/cart", d.CartHandler.AddToCart)
	private.PUT("/cart/:id", d.CartHandler.UpdateItem)
	private.DELETE("/cart/:id", d.CartHandler.RemoveItem)
	private.DELETE("/cart", d.CartHandler.ClearCart)

	private.GET("/orders", d.OrderHandler.ListOrders)
	private.GET("/orders/:id", d.OrderHandler.GetOrder)
	private.POST("/orders", d.OrderHandler.PlaceOrder)
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookbazaar/internal/service"
	"github.com/Skotchmaster/bookbazaar/internal/transport"
	"github.com/Skotchmaster/bookbazaar/pkg/logging"
)

var cartMessages = messages{notFound: "Cart item not found"}

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	userID, err := currentUser(c, l, "get_cart")
	if err != nil {
		return err
	}
	lines, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fail(l, "get_cart", err, cartMessages)
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *CartHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.summary")

	userID, err := currentUser(c, l, "cart_summary")
	if err != nil {
		return err
	}
	lines, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fail(l, "cart_summary", err, cartMessages)
	}
	return c.JSON(http.StatusOK, service.Summary(lines))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	userID, err := currentUser(c, l, "add_to_cart")
	if err != nil {
		return err
	}
	var req transport.AddToCartRequest
	if err := bind(c, l, "add_to_cart", &req); err != nil {
		return err
	}

	line, err := h.Svc.AddToCart(ctx, userID, req.BookID, req.Quantity)
	if err != nil {
		return fail(l, "add_to_cart", err, messages{notFound: "Book not found"})
	}

	l.Info("add_to_cart_success", "cart_item_id", line.ID, "quantity", line.Quantity)
	return c.JSON(http.StatusCreated, line)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	userID, err := currentUser(c, l, "update_cart_item")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "update_cart_item")
	if err != nil {
		return err
	}
	var req transport.UpdateCartItemRequest
	if err := bind(c, l, "update_cart_item", &req); err != nil {
		return err
	}

	line, err := h.Svc.UpdateQuantity(ctx, userID, id, req.Quantity)
	if err != nil {
		return fail(l, "update_cart_item", err, cartMessages)
	}
	return c.JSON(http.StatusOK, line)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	userID, err := currentUser(c, l, "remove_cart_item")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "remove_cart_item")
	if err != nil {
		return err
	}

	removed, err := h.Svc.RemoveItem(ctx, userID, id)
	if err != nil {
		return fail(l, "remove_cart_item", err, cartMessages)
	}
	if !removed {
		l.Warn("remove_cart_item_error", "status", 404, "reason", "not found", "cart_item_id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Cart item not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear_cart")

	userID, err := currentUser(c, l, "clear_cart")
	if err != nil {
		return err
	}
	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		return fail(l, "clear_cart", err, cartMessages)
	}

	l.Info("cart successfully cleared")
	return c.NoContent(http.StatusNoContent)
}

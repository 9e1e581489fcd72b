package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookbazaar/internal/service"
	"github.com/Skotchmaster/bookbazaar/internal/transport"
	"github.com/Skotchmaster/bookbazaar/pkg/logging"
)

var orderMessages = messages{
	notFound:  "Order not found",
	forbidden: "Not authorized to view this order",
}

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	userID, err := currentUser(c, l, "place_order")
	if err != nil {
		return err
	}
	var req transport.PlaceOrderRequest
	if err := bind(c, l, "place_order", &req); err != nil {
		return err
	}

	order, err := h.Svc.PlaceOrder(ctx, userID, req.ShippingAddress)
	if err != nil {
		return fail(l, "place_order", err, messages{notFound: "Book in cart no longer exists"})
	}

	l.Info("place_order_success", "order_id", order.ID, "items", len(order.Items))
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	userID, err := currentUser(c, l, "list_orders")
	if err != nil {
		return err
	}
	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		return fail(l, "list_orders", err, orderMessages)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	userID, err := currentUser(c, l, "get_order")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "get_order")
	if err != nil {
		return err
	}
	order, err := h.Svc.GetOrder(ctx, userID, id)
	if err != nil {
		return fail(l, "get_order", err, orderMessages)
	}
	return c.JSON(http.StatusOK, order)
}

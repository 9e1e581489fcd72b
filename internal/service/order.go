package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bookbazaar/internal/events"
	"github.com/Skotchmaster/bookbazaar/internal/models"
	"github.com/Skotchmaster/bookbazaar/internal/repo"
)

type OrderLine struct {
	models.OrderItem
	Book *models.Book `json:"book"`
}

type OrderDetail struct {
	models.Order
	Items []OrderLine `json:"items"`
}

type OrderService struct {
	Repo   repo.Repository
	Events events.Publisher

	// MarkSoldOutOfStock flips every ordered book to out of stock at checkout.
	MarkSoldOutOfStock bool
}

// PlaceOrder turns the user's cart into a Pending order. Prices are frozen on
// the order items, and the cart is emptied in the same atomic unit.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, shippingAddress string) (*OrderDetail, error) {
	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		return nil, invalid("Shipping address is required")
	}

	var detail OrderDetail
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		cart, err := tx.ListCartItems(ctx, userID)
		if err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		books := make([]*models.Book, len(cart))
		for i, it := range cart {
			book, err := tx.GetBook(ctx, it.BookID)
			if errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("book %d in cart: %w", it.BookID, ErrNotFound)
			}
			if err != nil {
				return err
			}
			if !book.InStock {
				return &OutOfStockError{BookID: book.ID, Title: book.Title}
			}
			books[i] = book
		}

		total := decimal.Zero
		for i, it := range cart {
			total = total.Add(lineTotal(books[i].Price, it.Quantity))
		}

		order := models.Order{
			UserID:          userID,
			Status:          models.OrderStatusPending,
			Total:           total.InexactFloat64(),
			ShippingAddress: address,
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}

		lines := make([]OrderLine, 0, len(cart))
		for i, it := range cart {
			item := models.OrderItem{
				OrderID:  order.ID,
				BookID:   it.BookID,
				Quantity: it.Quantity,
				Price:    books[i].Price,
			}
			if err := tx.CreateOrderItem(ctx, &item); err != nil {
				return err
			}
			lines = append(lines, OrderLine{OrderItem: item, Book: books[i]})
		}

		if s.MarkSoldOutOfStock {
			for _, b := range books {
				if !b.InStock {
					continue
				}
				b.InStock = false
				if err := tx.SaveBook(ctx, b); err != nil {
					return err
				}
			}
		}

		if err := tx.ClearCart(ctx, userID); err != nil {
			return err
		}

		detail = OrderDetail{Order: order, Items: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicOrders, events.Event{Type: events.OrderPlaced, EntityID: detail.ID, UserID: userID, Data: detail})
	return &detail, nil
}

func (s *OrderService) detail(ctx context.Context, r repo.Repository, order models.Order) (OrderDetail, error) {
	items, err := r.ListOrderItems(ctx, order.ID)
	if err != nil {
		return OrderDetail{}, err
	}
	lines := make([]OrderLine, 0, len(items))
	for _, it := range items {
		book, err := lookupBook(ctx, r, it.BookID)
		if err != nil {
			return OrderDetail{}, err
		}
		lines = append(lines, OrderLine{OrderItem: it, Book: book})
	}
	return OrderDetail{Order: order, Items: lines}, nil
}

// ListOrders returns the user's orders newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]OrderDetail, error) {
	out := []OrderDetail{}
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		orders, err := tx.ListOrders(ctx, userID)
		if err != nil {
			return err
		}
		for _, o := range orders {
			d, err := s.detail(ctx, tx, o)
			if err != nil {
				return err
			}
			out = append(out, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint) (*OrderDetail, error) {
	var out OrderDetail
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		order, err := tx.GetOrder(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return fmt.Errorf("order %d: %w", orderID, ErrForbidden)
		}
		out, err = s.detail(ctx, tx, *order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

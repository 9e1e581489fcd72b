package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/bookbazaar/internal/events"
	"github.com/Skotchmaster/bookbazaar/internal/models"
	"github.com/Skotchmaster/bookbazaar/internal/repo"
	"github.com/Skotchmaster/bookbazaar/internal/transport"
)

// CartLine is a cart item joined with the book's current record.
// Book is nil when the book has been deleted since it was added.
type CartLine struct {
	models.CartItem
	Book *models.Book `json:"book"`
}

// MaxQuantity caps the copies of one book in a cart line.
const MaxQuantity = 10000

type CartService struct {
	Repo   repo.Repository
	Events events.Publisher
}

// lookupBook returns nil without error for a book that no longer exists.
func lookupBook(ctx context.Context, r repo.Repository, id uint) (*models.Book, error) {
	b, err := r.GetBook(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return b, err
}

// AddToCart merges qty into the user's line for bookID. A zero qty adds one copy.
func (s *CartService) AddToCart(ctx context.Context, userID, bookID uint, qty int) (*CartLine, error) {
	if qty < 0 || qty > MaxQuantity {
		return nil, invalid("Invalid quantity")
	}
	if qty == 0 {
		qty = 1
	}

	var line CartLine
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		book, err := tx.GetBook(ctx, bookID)
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("book %d: %w", bookID, ErrNotFound)
		}
		if err != nil {
			return err
		}
		if !book.InStock {
			return &OutOfStockError{BookID: book.ID, Title: book.Title}
		}

		items, err := tx.ListCartItems(ctx, userID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.BookID == bookID && it.Quantity+uint(qty) > MaxQuantity {
				return invalid("Invalid quantity")
			}
		}

		item, err := tx.MergeCartItem(ctx, userID, bookID, uint(qty))
		if err != nil {
			return err
		}
		line = CartLine{CartItem: *item, Book: book}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicCart, events.Event{Type: events.CartItemAdded, EntityID: line.ID, UserID: userID, Data: line.CartItem})
	return &line, nil
}

// ownedItem treats another user's item as missing.
func ownedItem(ctx context.Context, r repo.Repository, userID, itemID uint) (*models.CartItem, error) {
	item, err := r.GetCartItem(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && item.UserID != userID) {
		return nil, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}
	return item, err
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, qty int) (*CartLine, error) {
	if qty < 1 || qty > MaxQuantity {
		return nil, invalid("Invalid quantity")
	}

	var line CartLine
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		if _, err := ownedItem(ctx, tx, userID, itemID); err != nil {
			return err
		}
		item, err := tx.UpdateCartItemQuantity(ctx, itemID, uint(qty))
		if err != nil {
			return err
		}
		book, err := lookupBook(ctx, tx, item.BookID)
		if err != nil {
			return err
		}
		line = CartLine{CartItem: *item, Book: book}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, events.TopicCart, events.Event{Type: events.CartUpdated, EntityID: itemID, UserID: userID, Data: line.CartItem})
	return &line, nil
}

// RemoveItem reports false when the item is already gone.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (bool, error) {
	removed := false
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		_, err := ownedItem(ctx, tx, userID, itemID)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		removed, err = tx.DeleteCartItem(ctx, itemID)
		return err
	})
	if err != nil {
		return false, err
	}

	if removed {
		publish(ctx, s.Events, events.TopicCart, events.Event{Type: events.CartRemoved, EntityID: itemID, UserID: userID})
	}
	return removed, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		return err
	}
	publish(ctx, s.Events, events.TopicCart, events.Event{Type: events.CartCleared, EntityID: userID, UserID: userID})
	return nil
}

// GetCart joins every item with the book's live record, so prices are current.
func (s *CartService) GetCart(ctx context.Context, userID uint) ([]CartLine, error) {
	lines := []CartLine{}
	err := s.Repo.Atomically(ctx, func(tx repo.Repository) error {
		items, err := tx.ListCartItems(ctx, userID)
		if err != nil {
			return err
		}
		for _, it := range items {
			book, err := lookupBook(ctx, tx, it.BookID)
			if err != nil {
				return err
			}
			lines = append(lines, CartLine{CartItem: it, Book: book})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// Summary totals the lines at their current prices. Lines without a book count
// toward the quantity but add nothing to the subtotal.
func Summary(lines []CartLine) transport.CartSummaryResponse {
	subtotal := decimal.Zero
	var count uint
	for _, l := range lines {
		count += l.Quantity
		if l.Book != nil {
			subtotal = subtotal.Add(lineTotal(l.Book.Price, l.Quantity))
		}
	}
	return transport.CartSummaryResponse{Subtotal: subtotal.InexactFloat64(), Count: count}
}

func lineTotal(price float64, qty uint) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromUint64(uint64(qty)))
}

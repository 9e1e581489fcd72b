package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/bookbazaar/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Repository is the entity store shared by every service.
// Implementations must make each method atomic on its own;
// Atomically groups several calls into one unit.
type Repository interface {
	// Atomically runs fn against a store that applies all of fn's writes or none.
	Atomically(ctx context.Context, fn func(tx Repository) error) error

	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	SaveUser(ctx context.Context, u *models.User) error

	GetBook(ctx context.Context, id uint) (*models.Book, error)
	ListBooks(ctx context.Context, f BookFilter) ([]models.Book, error)
	CreateBook(ctx context.Context, b *models.Book) error
	SaveBook(ctx context.Context, b *models.Book) error
	DeleteBook(ctx context.Context, id uint) (bool, error)

	GetCartItem(ctx context.Context, id uint) (*models.CartItem, error)
	ListCartItems(ctx context.Context, userID uint) ([]models.CartItem, error)
	// MergeCartItem adds qty to the (userID, bookID) line, creating it if absent.
	MergeCartItem(ctx context.Context, userID, bookID, qty uint) (*models.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, id, qty uint) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id uint) (bool, error)
	ClearCart(ctx context.Context, userID uint) error

	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	// ListOrders returns the user's orders newest first.
	ListOrders(ctx context.Context, userID uint) ([]models.Order, error)
	CreateOrder(ctx context.Context, o *models.Order) error
	ListOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	CreateOrderItem(ctx context.Context, it *models.OrderItem) error
}

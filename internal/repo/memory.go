package repo

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Skotchmaster/bookbazaar/internal/models"
)

type memState struct {
	now func() time.Time

	users      map[uint]models.User
	books      map[uint]models.Book
	cartItems  map[uint]models.CartItem
	orders     map[uint]models.Order
	orderItems map[uint]models.OrderItem

	// next ids are never rewound, not even by a rolled back unit
	nextUser, nextBook, nextCartItem, nextOrder, nextOrderItem uint
}

// MemRepo keeps every entity in process memory behind one store-wide mutex.
type MemRepo struct {
	mu *sync.Mutex
	st *memState

	// set on the handle passed into Atomically, which already holds mu
	undo *[]func()
}

type MemOption func(*memState)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) MemOption {
	return func(s *memState) { s.now = now }
}

func NewMemRepo(opts ...MemOption) *MemRepo {
	st := &memState{
		now:        func() time.Time { return time.Now().UTC() },
		users:      map[uint]models.User{},
		books:      map[uint]models.Book{},
		cartItems:  map[uint]models.CartItem{},
		orders:     map[uint]models.Order{},
		orderItems: map[uint]models.OrderItem{},
	}
	for _, o := range opts {
		o(st)
	}
	return &MemRepo{mu: &sync.Mutex{}, st: st}
}

func (r *MemRepo) lock() func() {
	if r.undo != nil {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *MemRepo) Atomically(_ context.Context, fn func(tx Repository) error) error {
	if r.undo != nil {
		return fn(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	journal := []func(){}
	tx := &MemRepo{mu: r.mu, st: r.st, undo: &journal}
	if err := fn(tx); err != nil {
		for i := len(journal) - 1; i >= 0; i-- {
			journal[i]()
		}
		return err
	}
	return nil
}

func (r *MemRepo) record(f func()) {
	if r.undo != nil {
		*r.undo = append(*r.undo, f)
	}
}

func put[T any](r *MemRepo, m map[uint]T, id uint, v T) {
	prev, had := m[id]
	r.record(func() {
		if had {
			m[id] = prev
		} else {
			delete(m, id)
		}
	})
	m[id] = v
}

func remove[T any](r *MemRepo, m map[uint]T, id uint) bool {
	prev, had := m[id]
	if !had {
		return false
	}
	r.record(func() { m[id] = prev })
	delete(m, id)
	return true
}

// sortedValues returns the map's records in id order, which is insertion order.
func sortedValues[T any](m map[uint]T, keep func(T) bool) []T {
	ids := make([]uint, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func next(counter *uint) uint {
	*counter++
	return *counter
}

func (r *MemRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	defer r.lock()()
	u, ok := r.st.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u = u.Clone()
	return &u, nil
}

func (r *MemRepo) findUser(match func(models.User) bool) (*models.User, error) {
	found := sortedValues(r.st.users, match)
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	u := found[0].Clone()
	return &u, nil
}

func (r *MemRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	defer r.lock()()
	return r.findUser(func(u models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (r *MemRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	defer r.lock()()
	return r.findUser(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *MemRepo) userTaken(u *models.User) bool {
	for id, other := range r.st.users {
		if id == u.ID {
			continue
		}
		if strings.EqualFold(other.Username, u.Username) || strings.EqualFold(other.Email, u.Email) {
			return true
		}
	}
	return false
}

func (r *MemRepo) CreateUser(_ context.Context, u *models.User) error {
	defer r.lock()()
	u.ID = 0
	if r.userTaken(u) {
		return ErrDuplicate
	}
	u.ID = next(&r.st.nextUser)
	u.CreatedAt = r.st.now()
	put(r, r.st.users, u.ID, u.Clone())
	return nil
}

func (r *MemRepo) SaveUser(_ context.Context, u *models.User) error {
	defer r.lock()()
	prev, ok := r.st.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	if r.userTaken(u) {
		return ErrDuplicate
	}
	u.CreatedAt = prev.CreatedAt
	put(r, r.st.users, u.ID, u.Clone())
	return nil
}

func (r *MemRepo) GetBook(_ context.Context, id uint) (*models.Book, error) {
	defer r.lock()()
	b, ok := r.st.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	b = b.Clone()
	return &b, nil
}

func (r *MemRepo) ListBooks(_ context.Context, f BookFilter) ([]models.Book, error) {
	defer r.lock()()
	books := sortedValues(r.st.books, f.Match)
	for i := range books {
		books[i] = books[i].Clone()
	}
	return books, nil
}

func (r *MemRepo) CreateBook(_ context.Context, b *models.Book) error {
	defer r.lock()()
	b.ID = next(&r.st.nextBook)
	b.CreatedAt = r.st.now()
	put(r, r.st.books, b.ID, b.Clone())
	return nil
}

func (r *MemRepo) SaveBook(_ context.Context, b *models.Book) error {
	defer r.lock()()
	prev, ok := r.st.books[b.ID]
	if !ok {
		return ErrNotFound
	}
	b.CreatedAt = prev.CreatedAt
	put(r, r.st.books, b.ID, b.Clone())
	return nil
}

func (r *MemRepo) DeleteBook(_ context.Context, id uint) (bool, error) {
	defer r.lock()()
	return remove(r, r.st.books, id), nil
}

func (r *MemRepo) GetCartItem(_ context.Context, id uint) (*models.CartItem, error) {
	defer r.lock()()
	it, ok := r.st.cartItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (r *MemRepo) ListCartItems(_ context.Context, userID uint) ([]models.CartItem, error) {
	defer r.lock()()
	return sortedValues(r.st.cartItems, func(it models.CartItem) bool { return it.UserID == userID }), nil
}

func (r *MemRepo) MergeCartItem(_ context.Context, userID, bookID, qty uint) (*models.CartItem, error) {
	defer r.lock()()
	for id, it := range r.st.cartItems {
		if it.UserID == userID && it.BookID == bookID {
			it.Quantity += qty
			put(r, r.st.cartItems, id, it)
			return &it, nil
		}
	}
	it := models.CartItem{
		ID:        next(&r.st.nextCartItem),
		UserID:    userID,
		BookID:    bookID,
		Quantity:  qty,
		CreatedAt: r.st.now(),
	}
	put(r, r.st.cartItems, it.ID, it)
	return &it, nil
}

func (r *MemRepo) UpdateCartItemQuantity(_ context.Context, id, qty uint) (*models.CartItem, error) {
	defer r.lock()()
	it, ok := r.st.cartItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	it.Quantity = qty
	put(r, r.st.cartItems, id, it)
	return &it, nil
}

func (r *MemRepo) DeleteCartItem(_ context.Context, id uint) (bool, error) {
	defer r.lock()()
	return remove(r, r.st.cartItems, id), nil
}

func (r *MemRepo) ClearCart(_ context.Context, userID uint) error {
	defer r.lock()()
	for _, it := range sortedValues(r.st.cartItems, func(it models.CartItem) bool { return it.UserID == userID }) {
		remove(r, r.st.cartItems, it.ID)
	}
	return nil
}

func (r *MemRepo) GetOrder(_ context.Context, id uint) (*models.Order, error) {
	defer r.lock()()
	o, ok := r.st.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *MemRepo) ListOrders(_ context.Context, userID uint) ([]models.Order, error) {
	defer r.lock()()
	orders := sortedValues(r.st.orders, func(o models.Order) bool { return o.UserID == userID })
	slices.SortStableFunc(orders, func(a, b models.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return orders, nil
}

func (r *MemRepo) CreateOrder(_ context.Context, o *models.Order) error {
	defer r.lock()()
	o.ID = next(&r.st.nextOrder)
	o.CreatedAt = r.st.now()
	put(r, r.st.orders, o.ID, *o)
	return nil
}

func (r *MemRepo) ListOrderItems(_ context.Context, orderID uint) ([]models.OrderItem, error) {
	defer r.lock()()
	return sortedValues(r.st.orderItems, func(it models.OrderItem) bool { return it.OrderID == orderID }), nil
}

func (r *MemRepo) CreateOrderItem(_ context.Context, it *models.OrderItem) error {
	defer r.lock()()
	it.ID = next(&r.st.nextOrderItem)
	it.CreatedAt = r.st.now()
	put(r, r.st.orderItems, it.ID, *it)
	return nil
}

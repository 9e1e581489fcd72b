package repo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Skotchmaster/bookbazaar/internal/models"
	"github.com/Skotchmaster/bookbazaar/internal/repo"
	"github.com/Skotchmaster/bookbazaar/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) repo.Repository {
	t.Helper()
	ctx := context.Background()
	gdb, err := db.Open(ctx, db.DriverSQLite, db.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r, err := repo.NewGormRepo(ctx, gdb)
	require.NoError(t, err)
	return r
}

func forEachStore(t *testing.T, fn func(t *testing.T, r repo.Repository)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) { fn(t, repo.NewMemRepo()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteRepo(t)) })
}

func book(title string, price float64) *models.Book {
	return &models.Book{
		Title:       title,
		Author:      "Author of " + title,
		Description: "About " + title,
		Price:       price,
		Condition:   models.ConditionGood,
		Format:      models.FormatPaperback,
		Category:    models.CategoryFiction,
		ImageURL:    "https://example.com/" + title + ".jpg",
		SellerID:    1,
		InStock:     true,
	}
}

func ptr[T any](v T) *T { return &v }

func TestRepo_SequentialIDsNeverReused(t *testing.T) {
	forEachStore(t, func(t *testing.T, r repo.Repository) {
		ctx := context.Background()

		a, b := book("a", 1), book("b", 2)
		require.NoError(t, r.CreateBook(ctx, a))
		require.NoError(t, r.CreateBook(ctx, b))
		assert.Equal(t, uint(1), a.ID)
		assert.Equal(t, uint(2), b.ID)
		assert.False(t, b.CreatedAt.IsZero())

		ok, err := r.DeleteBook(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = r.DeleteBook(ctx, b.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		c := book("c", 3)
		require.NoError(t, r.CreateBook(ctx, c))
		assert.Equal(t, uint(3), c.ID)

		_, err = r.GetBook(ctx, b.ID)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestRepo_SaveBookKeepsCreatedAt(t *testing.T) {
	forEachStore(t, func(t *testing.T, r repo.Repository) {
		ctx := context.Background()
		b := book("a", 1)
		require.NoError(t, r.CreateBook(ctx, b))

		got, err := r.GetBook(ctx, b.ID)
		require.NoError(t, err)
		created := got.CreatedAt

		got.Price = 7.25
		got.InStock = false
		got.AdditionalImages = []string{"x.jpg"}
		require.NoError(t, r.SaveBook(ctx, got))

		again, err := r.GetBook(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 7.25, again.Price)
		assert.False(t, again.InStock)
		assert.Equal(t, []string{"x.jpg"}, again.AdditionalImages)
		assert.WithinDuration(t, created, again.CreatedAt, time.Millisecond)

		missing := book("missing", 1)
		missing.ID = 99
		assert.ErrorIs(t, r.SaveBook(ctx, missing), repo.ErrNotFound)
	})
}

func TestRepo_ListBooksFilters(t *testing.T) {
	forEachStore(t, func(t *testing.T, r repo.Repository) {
		ctx := context.Background()
		for i, p := range []float64{5, 10, 15, 20} {
			b := book(string(rune('a'+i)), p)
			if p == 20 {
				b.Title = "The Hobbit"
				b.Category = models.CategoryFantasy
				b.SellerID = 2
			}
			require.NoError(t, r.CreateBook(ctx, b))
		}

		got, err := r.ListBooks(ctx, repo.BookFilter{MinPrice: ptr(10.0), MaxPrice: ptr(15.0)})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 10.0, got[0].Price)
		assert.Equal(t, 15.0, got[1].Price)

		all, err := r.ListBooks(ctx, repo.BookFilter{Search: "   "})
		require.NoError(t, err)
		assert.Len(t, all, 4)

		hobbit, err := r.ListBooks(ctx, repo.BookFilter{Search: "hOBBIT"})
		require.NoError(t, err)
		require.Len(t, hobbit, 1)
		assert.Equal(t, "The Hobbit", hobbit[0].Title)

		byAuthor, err := r.ListBooks(ctx, repo.BookFilter{Search: "author of a"})
		require.NoError(t, err)
		require.Len(t, byAuthor, 1)

		fantasy := models.CategoryFantasy
		got, err = r.ListBooks(ctx, repo.BookFilter{Category: &fantasy, SellerID: ptr(uint(2))})
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = r.ListBooks(ctx, repo.BookFilter{Category: &fantasy, SellerID: ptr(uint(1))})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})
}

func TestRepo_MergeCartItem(t *testing.T) {
	forEachStore(t, func(t *testing.T, r repo.Repository) {
		ctx := context.Background()

		first, err := r.MergeCartItem(ctx, 1, 7, 2)
		require.NoError(t, err)
		second, err := r.MergeCartItem(ctx, 1, 7, 3)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, uint(5), second.Quantity)

		other, err := r.MergeCartItem(ctx, 2, 7, 1)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, other.ID)

		items, err := r.ListCartItems(ctx, 1)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, uint(5), items[0].Quantity)
	})
}

func TestRepo_MergeCartItemConcurrent(t *testing.T) {
	forEachStore(t, func(t *testing.T, r repo.Repository) {
		ctx := context.Background()
		const workers = 16

		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := r.MergeCartItem(ctx, 1, 42, 1)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		items, err := r.ListCartItems(ctx, 1)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, uint(workers), items[0].Quantity)
	})
}

func TestRepo_CartItemUpdateDeleteClear(t *testing.T) {
	forEachStore(t, func(t *testing.T, r repo.Repository) {
		ctx := context.Background()

		a, err := r.MergeCartItem(ctx, 1, 1, 1)
		require.NoError(t, err)
		_, err = r.MergeCartItem(ctx, 1, 2, 1)
		require.NoError(t, err)
		_, err = r.MergeCartItem(ctx, 2, 1, 1)
		require.NoError(t, err)

		upd, err := r.UpdateCartItemQuantity(ctx, a.ID, 9)
		require.NoError(t, err)
		assert.Equal(t, uint(9), upd.Quantity)

		_, err = r.UpdateCartItemQuantity(ctx, 999, 1)
		assert.ErrorIs(t, err, repo.ErrNotFound)

		ok, err := r.DeleteCartItem(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = r.DeleteCartItem(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, r.ClearCart(ctx, 1))
		items, err := r.ListCartItems(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, items)

		items, err = r.ListCartItems(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}

func TestRepo_ListOrdersNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	r := repo.NewMemRepo(repo.WithClock(clock))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, r.CreateOrder(ctx, &models.Order{UserID: 1, Status: models.OrderStatusPending, ShippingAddress: "x"}))
	}
	require.NoError(t, r.CreateOrder(ctx, &models.Order{UserID: 2, Status: models.OrderStatusPending, ShippingAddress: "y"}))

	orders, err := r.ListOrders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []uint{3, 2, 1}, []uint{orders[0].ID, orders[1].ID, orders[2].ID})
}

func TestRepo_ListOrdersTieBrokenByID(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := repo.NewMemRepo(repo.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, r.CreateOrder(ctx, &models.Order{UserID: 1, Status: models.OrderStatusPending}))
	}
	orders, err := r.ListOrders(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 2, 1}, []uint{orders[0].ID, orders[1].ID, orders[2].ID})
}

func TestRepo_OrderItems(t *testing.T) {
	forEachStore(t, func(t *testing.T, r repo.Repository) {
		ctx := context.Background()
		o := &models.Order{UserID: 1, Status: models.OrderStatusPending, Total: 3, ShippingAddress: "1 Main St"}
		require.NoError(t, r.CreateOrder(ctx, o))

		for _, bookID := range []uint{5, 6} {
			require.NoError(t, r.CreateOrderItem(ctx, &models.OrderItem{OrderID: o.ID, BookID: bookID, Quantity: 1, Price: 1.5}))
		}

		items, err := r.ListOrderItems(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, uint(5), items[0].BookID)

		got, err := r.GetOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, got.Status)

		_, err = r.GetOrder(ctx, 99)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestRepo_AtomicallyRollsBack(t *testing.T) {
	forEachStore(t, func(t *testing.T, r repo.Repository) {
		ctx := context.Background()
		b := book("kept", 4)
		require.NoError(t, r.CreateBook(ctx, b))
		_, err := r.MergeCartItem(ctx, 1, b.ID, 1)
		require.NoError(t, err)

		boom := errors.New("boom")
		err = r.Atomically(ctx, func(tx repo.Repository) error {
			if err := tx.CreateOrder(ctx, &models.Order{UserID: 1, Status: models.OrderStatusPending}); err != nil {
				return err
			}
			if err := tx.ClearCart(ctx, 1); err != nil {
				return err
			}
			got, err := tx.GetBook(ctx, b.ID)
			if err != nil {
				return err
			}
			got.Price = 100
			if err := tx.SaveBook(ctx, got); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		orders, err := r.ListOrders(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, orders)

		items, err := r.ListCartItems(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		got, err := r.GetBook(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.0, got.Price)
	})
}

func TestRepo_UserUniquenessIgnoresCase(t *testing.T) {
	forEachStore(t, func(t *testing.T, r repo.Repository) {
		ctx := context.Background()
		u := &models.User{Username: "Alice", PasswordHash: "h", Name: "Alice", Email: "alice@example.com"}
		require.NoError(t, r.CreateUser(ctx, u))

		dup := &models.User{Username: "alice", PasswordHash: "h", Name: "A", Email: "other@example.com"}
		assert.ErrorIs(t, r.CreateUser(ctx, dup), repo.ErrDuplicate)

		dup = &models.User{Username: "bob", PasswordHash: "h", Name: "B", Email: "ALICE@example.com"}
		assert.ErrorIs(t, r.CreateUser(ctx, dup), repo.ErrDuplicate)

		got, err := r.GetUserByUsername(ctx, "ALICE")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		got, err = r.GetUserByEmail(ctx, "Alice@Example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		got.Name = "Alice Liddell"
		require.NoError(t, r.SaveUser(ctx, got))
		again, err := r.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice Liddell", again.Name)
	})
}

func TestMemRepo_CopiesRecords(t *testing.T) {
	r := repo.NewMemRepo()
	ctx := context.Background()
	b := book("a", 1)
	b.AdditionalImages = []string{"one.jpg"}
	require.NoError(t, r.CreateBook(ctx, b))

	b.AdditionalImages[0] = "mutated.jpg"
	got, err := r.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "one.jpg", got.AdditionalImages[0])

	got.Title = "changed"
	again, err := r.GetBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", again.Title)
}

package repo

import (
	"context"

	"github.com/Skotchmaster/bookbazaar/internal/models"
)

func (r *GormRepo) GetBook(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &book, nil
}

// ListBooks pushes the column predicates into SQL and applies the text search
// in Go so that both stores match the same rows.
func (r *GormRepo) ListBooks(ctx context.Context, f BookFilter) ([]models.Book, error) {
	q := r.DB.WithContext(ctx).Model(&models.Book{})
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.Condition != nil {
		q = q.Where("condition = ?", *f.Condition)
	}
	if f.Format != nil {
		q = q.Where("format = ?", *f.Format)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.SellerID != nil {
		q = q.Where("seller_id = ?", *f.SellerID)
	}

	var items []models.Book
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	out := make([]models.Book, 0, len(items))
	for _, b := range items {
		if f.matchSearch(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, b *models.Book) error {
	b.ID = 0
	return mapErr(r.DB.WithContext(ctx).Create(b).Error)
}

func (r *GormRepo) SaveBook(ctx context.Context, b *models.Book) error {
	if _, err := r.GetBook(ctx, b.ID); err != nil {
		return err
	}
	return mapErr(r.DB.WithContext(ctx).Omit("created_at").Save(b).Error)
}

func (r *GormRepo) DeleteBook(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Book{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

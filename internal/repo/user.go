package repo

import (
	"context"

	"github.com/Skotchmaster/bookbazaar/internal/models"
)

func (r *GormRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("LOWER(username) = LOWER(?)", username).Order("id ASC").First(&user).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).Order("id ASC").First(&user).Error; err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

// userTaken checks the case-insensitive uniqueness the column indexes cannot express.
func (r *GormRepo) userTaken(ctx context.Context, u *models.User) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id <> ? AND (LOWER(username) = LOWER(?) OR LOWER(email) = LOWER(?))", u.ID, u.Username, u.Email).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = 0
	taken, err := r.userTaken(ctx, u)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicate
	}
	return mapErr(r.DB.WithContext(ctx).Create(u).Error)
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	if _, err := r.GetUser(ctx, u.ID); err != nil {
		return err
	}
	taken, err := r.userTaken(ctx, u)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicate
	}
	return mapErr(r.DB.WithContext(ctx).Omit("created_at").Save(u).Error)
}

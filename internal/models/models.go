package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"      json:"username"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Name         string    `gorm:"not null"                  json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	ProfileImage *string   `                                 json:"profileImage"`
	CreatedAt    time.Time `gorm:"autoCreateTime"            json:"createdAt"`
}

type Book struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Title            string    `gorm:"not null"                  json:"title"`
	Author           string    `gorm:"not null"                  json:"author"`
	Description      string    `gorm:"not null"                  json:"description"`
	Price            float64   `gorm:"not null;check:price>=0"   json:"price"`
	Condition        Condition `gorm:"type:text;not null"        json:"condition"`
	Format           Format    `gorm:"type:text;not null"        json:"format"`
	Category         Category  `gorm:"type:text;index;not null"  json:"category"`
	ImageURL         string    `gorm:"not null"                  json:"imageUrl"`
	AdditionalImages []string  `gorm:"type:text;serializer:json" json:"additionalImages"`
	SellerID         uint      `gorm:"index;not null"            json:"sellerId"`
	InStock          bool      `gorm:"not null"                  json:"inStock"`
	CreatedAt        time.Time `gorm:"autoCreateTime"            json:"createdAt"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                   json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_cart_user_book;not null"    json:"userId"`
	BookID    uint      `gorm:"uniqueIndex:idx_cart_user_book;not null"    json:"bookId"`
	Quantity  uint      `gorm:"not null;default:1;check:quantity>0"        json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime"                             json:"createdAt"`
}

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement"      json:"id"`
	UserID          uint        `gorm:"index;not null"                json:"userId"`
	Status          OrderStatus `gorm:"type:text;not null"            json:"status"`
	Total           float64     `gorm:"not null;check:total>=0"       json:"total"`
	ShippingAddress string      `gorm:"not null"                      json:"shippingAddress"`
	CreatedAt       time.Time   `gorm:"autoCreateTime;index"          json:"createdAt"`
}

type OrderItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID   uint      `gorm:"index;not null"            json:"orderId"`
	BookID    uint      `gorm:"not null"                  json:"bookId"`
	Quantity  uint      `gorm:"not null;check:quantity>0" json:"quantity"`
	Price     float64   `gorm:"not null"                  json:"price"`
	CreatedAt time.Time `gorm:"autoCreateTime"            json:"createdAt"`
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&User{}, &Book{}, &CartItem{}, &Order{}, &OrderItem{}}
}

// Clone returns a copy of b that shares no slices with it.
func (b Book) Clone() Book {
	if b.AdditionalImages != nil {
		b.AdditionalImages = append([]string(nil), b.AdditionalImages...)
	}
	return b
}

func (u User) Clone() User {
	if u.ProfileImage != nil {
		img := *u.ProfileImage
		u.ProfileImage = &img
	}
	return u
}

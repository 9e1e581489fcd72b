package transport

import "github.com/Skotchmaster/bookbazaar/internal/models"

type RegisterRequest struct {
	Username     string  `json:"username" validate:"required,min=3,max=64"`
	Password     string  `json:"password" validate:"required,min=6"`
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Email        *string `json:"email" validate:"omitempty,email"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,url"`
	Password     *string `json:"password" validate:"omitempty,min=6"`
}

type CreateBookRequest struct {
	Title            string           `json:"title" validate:"required"`
	Author           string           `json:"author" validate:"required"`
	Description      string           `json:"description" validate:"required"`
	Price            float64          `json:"price" validate:"gte=0"`
	Condition        models.Condition `json:"condition" validate:"required"`
	Format           models.Format    `json:"format" validate:"required"`
	Category         models.Category  `json:"category" validate:"required"`
	ImageURL         string           `json:"imageUrl" validate:"required"`
	AdditionalImages []string         `json:"additionalImages"`
	InStock          *bool            `json:"inStock"`
}

// PatchBookRequest carries only the fields to change.
type PatchBookRequest struct {
	Title            *string           `json:"title" validate:"omitempty,min=1"`
	Author           *string           `json:"author" validate:"omitempty,min=1"`
	Description      *string           `json:"description" validate:"omitempty,min=1"`
	Price            *float64          `json:"price" validate:"omitempty,gte=0"`
	Condition        *models.Condition `json:"condition"`
	Format           *models.Format    `json:"format"`
	Category         *models.Category  `json:"category"`
	ImageURL         *string           `json:"imageUrl" validate:"omitempty,min=1"`
	AdditionalImages *[]string         `json:"additionalImages"`
	InStock          *bool             `json:"inStock"`
}

type AddToCartRequest struct {
	BookID   uint `json:"bookId" validate:"required,gt=0"`
	Quantity int  `json:"quantity" validate:"gte=0,max=10000"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"max=10000"`
}

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

type CartSummaryResponse struct {
	Subtotal float64 `json:"subtotal"`
	Count    uint    `json:"count"`
}

type AttributesResponse struct {
	Categories []models.Category  `json:"categories"`
	Conditions []models.Condition `json:"conditions"`
	Formats    []models.Format    `json:"formats"`
}

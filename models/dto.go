package models

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
}

// AddItemRequest carries a pointer quantity so an omitted field (defaults to
// one) can be told apart from an explicit zero (rejected).
type AddItemRequest struct {
	ProductID int  `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CreateProductRequest struct {
	Name         string          `json:"name" form:"name" binding:"required"`
	Description  string          `json:"description" form:"description"`
	Category     string          `json:"category" form:"category"`
	Price        decimal.Decimal `json:"price" form:"price" binding:"required"`
	Stock        int             `json:"stock" form:"stock"`
	ImageURL     string          `json:"image_url" form:"image_url"`
	CloudinaryID string          `json:"-" form:"-"`
	PriceRef     string          `json:"price_ref" form:"price_ref"`
	ProductRef   string          `json:"product_ref" form:"product_ref"`
}

type UpdateProductRequest struct {
	Name         string          `json:"name" form:"name"`
	Description  string          `json:"description" form:"description"`
	Category     string          `json:"category" form:"category"`
	Price        decimal.Decimal `json:"price" form:"price"`
	Stock        int             `json:"stock" form:"stock"`
	ImageURL     string          `json:"image_url" form:"image_url"`
	CloudinaryID string          `json:"-" form:"-"`
	PriceRef     string          `json:"price_ref" form:"price_ref"`
	ProductRef   string          `json:"product_ref" form:"product_ref"`
	IsActive     bool            `json:"is_active" form:"is_active"`
}

type CreateDiscountRuleRequest struct {
	ProductID         int             `json:"product_id" binding:"required"`
	ThresholdQuantity int             `json:"threshold_quantity" binding:"required,min=1"`
	DiscountAmount    decimal.Decimal `json:"discount_amount" binding:"required"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
}

type CreatePostRequest struct {
	Title         string   `json:"title" binding:"required,max=100"`
	Content       string   `json:"content" binding:"required"`
	Excerpt       string   `json:"excerpt" binding:"omitempty,max=500"`
	FeaturedImage string   `json:"featured_image"`
	Status        string   `json:"status" binding:"omitempty,oneof=draft published archived"`
	Tags          []string `json:"tags"`
}

type UpdatePostRequest struct {
	Title         string   `json:"title" binding:"omitempty,max=100"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt" binding:"omitempty,max=500"`
	FeaturedImage string   `json:"featured_image"`
	Status        string   `json:"status" binding:"omitempty,oneof=draft published archived"`
	Tags          []string `json:"tags"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"session_id,omitempty"`
	URL       string `json:"url,omitempty"`
}

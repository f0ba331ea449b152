package dto

import "time"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	CategoryID  string  `json:"category_id"`
	Brand       string  `json:"brand,omitempty"`
	Model       string  `json:"model,omitempty"`
	Serial      string  `json:"serial,omitempty"`
	LocationID  *string `json:"location_id,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	UnitPrice   string  `json:"unit_price,omitempty"`
}

// ProductResponse un producto en respuestas. UnitPrice y TotalValue van como
// texto para no perder precisión decimal en JSON.
type ProductResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CategoryID  string    `json:"category_id"`
	Brand       string    `json:"brand,omitempty"`
	Model       string    `json:"model,omitempty"`
	Serial      string    `json:"serial,omitempty"`
	LocationID  *string   `json:"location_id,omitempty"`
	AssigneeID  *string   `json:"assignee_id,omitempty"`
	State       string    `json:"state"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	TotalValue  string    `json:"total_value"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse una categoría en respuestas.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

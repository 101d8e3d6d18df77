package dto

import (
	"time"
)

// Taxonomy entities (exam names, types, paper types, years, subjects) share
// one request/response shape.
type CreateTaxonomyRequest struct {
	Name        string `json:"name" binding:"required,min=3"`
	Description string `json:"description" binding:"required,min=7"`
}

type UpdateTaxonomyRequest struct {
	Name        string `json:"name" binding:"omitempty,min=3"`
	Description string `json:"description" binding:"omitempty,min=7"`
	IsActivated *bool  `json:"is_activated"`
}

type TaxonomyResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActivated bool      `json:"is_activated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

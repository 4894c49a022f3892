package domain

import (
	"time"

	"github.com/google/uuid"
)

type BrandStatus string

const (
	BrandApproved BrandStatus = "approved"
	BrandPending  BrandStatus = "pending"
	BrandRejected BrandStatus = "rejected"
)

func ParseBrandStatus(s string) (BrandStatus, bool) {
	switch BrandStatus(s) {
	case BrandApproved, BrandPending, BrandRejected:
		return BrandStatus(s), true
	}
	return "", false
}

type Brand struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Logo        *string     `json:"logo,omitempty"`
	Banner      *string     `json:"banner,omitempty"`
	Status      BrandStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type Product struct {
	ID          uuid.UUID `json:"id"`
	BrandID     uuid.UUID `json:"brand_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Subcategory *string   `json:"subcategory,omitempty"`
	Colors      []string  `json:"colors"`
	Sizes       []string  `json:"sizes"`
	Images      []string  `json:"images"`
	Gender      *string   `json:"gender,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductFilter narrows product listings; zero values mean no filter.
type ProductFilter struct {
	Category string
	BrandID  *uuid.UUID
	Gender   string
	Limit    int
	Offset   int
}

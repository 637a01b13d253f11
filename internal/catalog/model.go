package catalog

import (
	"github.com/gofrs/uuid"
)

// MenuItem is the single normalized menu shape. Both the menu_catalog SQL
// function and the join fallback are adapted into it.
type MenuItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	IsActive     bool      `json:"is_active"`
	CategoryID   uuid.UUID `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
}

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SortOrder string

const (
	SortByName      SortOrder = "name"
	SortNewest      SortOrder = "newest"
	SortPriceAsc    SortOrder = "price-asc"
	SortPriceDesc   SortOrder = "price-desc"
	DefaultSort               = SortByName
	RecommendLimit            = 15
)

type Filter struct {
	CategoryID uuid.UUID
	Sort       SortOrder
}

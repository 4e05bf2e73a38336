package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a catalog entry sold by the store.
type Product struct {
	ID              int64                       `json:"id" gorm:"primaryKey"`
	Name            string                      `json:"name" gorm:"type:text;not null"`
	Description     string                      `json:"description" gorm:"type:text;not null"`
	FullDescription string                      `json:"fullDescription" gorm:"column:full_description;type:text;not null"`
	Price           float64                     `json:"price" gorm:"not null"`
	Discount        float64                     `json:"discount" gorm:"not null;default:0"`
	Category        string                      `json:"category" gorm:"type:text;not null"`
	Specs           datatypes.JSONSlice[string] `json:"specs" gorm:"type:json"`
	Images          datatypes.JSONSlice[string] `json:"image" gorm:"column:image;type:json"`
	CreatedAt       time.Time                   `json:"createdAt" gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time                   `json:"updatedAt" gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }

const (
	// MaxImages caps how many image slots a product carries.
	MaxImages = 3
)

package models

import (
	"time"

	"gorm.io/gorm"
)

// Weight modes. Fixed-weight products carry a catalog weight that is copied
// into order rows on selection; variable-weight products leave the row weight
// to the operator.
const (
	WeightModeFixed    = "fixed"
	WeightModeVariable = "variable"
)

type Product struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	Name       string  `gorm:"not null;unique" json:"name"`
	WeightMode string  `gorm:"size:10;not null;default:'variable'" json:"weight_mode"`
	UnitWeight float64 `json:"unit_weight"` // kg, meaningful for fixed mode
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`
	IsActive   bool    `gorm:"not null;default:true" json:"is_active"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// FixedWeight reports whether the catalog weight is authoritative for rows
// referencing this product.
func (p Product) FixedWeight() bool { return p.WeightMode == WeightModeFixed }

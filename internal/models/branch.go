package models

import "time"

// Branch is an operating location of the company. Customers, trucks and
// drivers are scoped to a branch; orders and trips reference one.
type Branch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:20;not null;unique" json:"code"` // ex: NBO-01
	Name      string    `gorm:"not null;index" json:"name"`
	City      string    `gorm:"index" json:"city"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Customer entity
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Contact   string    `json:"contact"` // primary contact person
	Phone     string    `json:"phone"`
	Email     string    `gorm:"index" json:"email"`
	BranchID  uint      `gorm:"not null;index" json:"branch_id"`
	Branch    Branch    `gorm:"foreignKey:BranchID" json:"-"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

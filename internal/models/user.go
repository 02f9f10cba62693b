package models

import "time"

// User & auth related models
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null;index" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	FirstName string    `gorm:"index" json:"first_name"`
	LastName  string    `gorm:"index" json:"last_name"`
	Phone     string    `json:"phone"`
	RoleID    uint      `json:"role_id"`
	Role      Role      `gorm:"foreignKey:RoleID" json:"-"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role kinds. Kind is the stable discriminator for role-specific behaviour;
// Name is display-only and free to change.
const (
	RoleKindAdmin     = "admin"
	RoleKindManager   = "manager"
	RoleKindMarketing = "marketing"
	RoleKindDriver    = "driver"
	RoleKindStaff     = "staff"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Kind        string    `gorm:"size:20;not null;default:'staff';index" json:"kind"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EmployeeProfile holds the two-step profile data: basic fields first, then
// role-specific fields depending on the user's role kind.
type EmployeeProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	// basic step
	Address          string     `json:"address"`
	EmergencyContact string     `json:"emergency_contact"`
	HireDate         *time.Time `json:"hire_date"`

	// role-specific step
	Region         string  `json:"region"`          // marketing
	CommissionRate float64 `json:"commission_rate"` // marketing
	LicenseClass   string  `json:"license_class"`   // driver

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Assignment links a marketing user to a customer they look after.
type Assignment struct {
	ID         uint      `gorm:"primaryKey;" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_user_customer,unique,priority:1" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	CustomerID uint      `gorm:"not null;index:idx_user_customer,unique,priority:2" json:"customer_id"`
	Customer   Customer  `gorm:"foreignKey:CustomerID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

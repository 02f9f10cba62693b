package models

import "time"

// Truck statuses
const (
	TruckAvailable   = "available"
	TruckInTransit   = "in_transit"
	TruckMaintenance = "maintenance"
)

// Driver statuses
const (
	DriverActive   = "active"
	DriverInactive = "inactive"
)

type Truck struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PlateNumber string    `gorm:"size:20;not null;unique" json:"plate_number"`
	Model       string    `gorm:"not null" json:"model"`
	CapacityKg  float64   `gorm:"not null" json:"capacity_kg"`
	Status      string    `gorm:"size:20;not null;default:'available';index" json:"status"`
	Branch      string    `gorm:"size:20;index" json:"branch"` // branch code
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Available reports whether the truck can be assigned to a new trip.
func (t Truck) Available() bool { return t.Status == TruckAvailable }

type Driver struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;index" json:"name"`
	Phone        string    `json:"phone"`
	LicenseNo    string    `gorm:"size:30;index" json:"license_no"`
	Status       string    `gorm:"size:20;not null;default:'active';index" json:"status"`
	CurrentTruck string    `gorm:"size:20" json:"current_truck"` // plate, empty when unassigned
	Branch       string    `gorm:"size:20;index" json:"branch"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Available reports whether the driver can be put on a new trip.
func (d Driver) Available() bool { return d.Status == DriverActive && d.CurrentTruck == "" }

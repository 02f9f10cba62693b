package models

import "time"

// Trip is a single dispatch of a truck+driver out of a branch. The truck and
// driver snapshot fields are denormalized from the fleet records at creation
// so the trip stays readable after fleet records change.
type Trip struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Branch        string    `gorm:"size:20;not null;index" json:"branch"`
	TruckID       uint      `gorm:"not null;index" json:"truck_id"`
	TruckPlate    string    `gorm:"size:20;not null" json:"truck_plate"`
	TruckModel    string    `json:"truck_model"`
	TruckCapacity float64   `json:"truck_capacity"`
	DriverID      uint      `gorm:"not null;index" json:"driver_id"`
	DriverName    string    `gorm:"not null" json:"driver_name"`
	DriverPhone   string    `json:"driver_phone"`
	CapacityTotal float64   `json:"capacity_total"`
	TripDate      time.Time `json:"trip_date"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Status        string    `gorm:"size:20;not null;default:'planned'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

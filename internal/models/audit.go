package models

import "time"

// AuditLog records who did what to which entity. EntityType is the model name
// ("Order", "Trip", "Truck"), Action the verb ("create", "toggle_active",
// "delete"), Detail optional free-form context.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `json:"user_id"`
	EntityType string    `json:"entity_type"`
	EntityID   uint      `json:"entity_id"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import "time"

// OrderDocument is an uploaded proof file attached to an order. Files either
// live on local disk (Path, served through the authenticated download route)
// or in external object storage (StorageURL, a pre-signed link).
type OrderDocument struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	Order      Order     `gorm:"foreignKey:OrderID" json:"-"`
	Kind       string    `gorm:"size:30;not null;index" json:"kind"` // ex: delivery_proof
	Name       string    `gorm:"not null" json:"name"`
	MimeType   string    `gorm:"size:100" json:"mime_type"`
	Path       string    `json:"-"` // local file path, empty for external docs
	StorageURL string    `json:"-"` // pre-signed object storage URL, optional
	UploadedBy uint      `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const DocKindDeliveryProof = "delivery_proof"

package models

import "time"

// Order with its line items. Totals are denormalized at creation time from the
// submitted items; ComputeTotals in services recomputes them for verification.
type Order struct {
	ID                  uint        `gorm:"primaryKey" json:"id"`
	OrderNumber         string      `gorm:"size:30;not null;unique" json:"order_number"`
	CustomerID          uint        `gorm:"not null;index" json:"customer_id"`
	Customer            Customer    `gorm:"foreignKey:CustomerID" json:"-"`
	BranchID            uint        `gorm:"not null;index" json:"branch_id"`
	Branch              Branch      `gorm:"foreignKey:BranchID" json:"-"`
	Status              string      `gorm:"size:20;not null;default:'created'" json:"status"`
	OrderType           string      `gorm:"size:20;not null;default:'standard'" json:"order_type"`
	Priority            string      `gorm:"size:20;not null;default:'normal'" json:"priority"`
	TotalWeight         float64     `json:"total_weight"`
	TotalVolume         float64     `json:"total_volume"`
	PackageCount        int         `json:"package_count"`
	PaymentType         string      `gorm:"size:20" json:"payment_type"`
	PickupDate          *time.Time  `json:"pickup_date"`
	DeliveryDate        *time.Time  `json:"delivery_date"`
	SpecialInstructions string      `json:"special_instructions"`
	Items               []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Weight    float64 `gorm:"not null" json:"weight"` // per-unit weight, kg
}

package services

import "github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"

// OrderService encapsulates order-related business logic shared by handlers.
type OrderService struct{}

func NewOrderService() *OrderService { return &OrderService{} }

// ComputeTotals recomputes package count and total weight from persisted
// items, used to verify client-supplied totals at creation time.
func (s *OrderService) ComputeTotals(items []models.OrderItem) (units int, weight float64) {
	for _, it := range items {
		units += it.Quantity
		weight += it.Weight * float64(it.Quantity)
	}
	return units, weight
}

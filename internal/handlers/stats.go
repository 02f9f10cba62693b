package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler { return &StatsHandler{DB: db} }

// Overview: GET /api/stats — entity counts for the landing dashboard.
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	var branches, customers, products, trucks, drivers, orders, trips int64
	h.DB.Model(&models.Branch{}).Count(&branches)
	h.DB.Model(&models.Customer{}).Count(&customers)
	h.DB.Model(&models.Product{}).Count(&products)
	h.DB.Model(&models.Truck{}).Count(&trucks)
	h.DB.Model(&models.Driver{}).Count(&drivers)
	h.DB.Model(&models.Order{}).Count(&orders)
	h.DB.Model(&models.Trip{}).Count(&trips)

	var trucksAvailable int64
	h.DB.Model(&models.Truck{}).Where("status = ?", models.TruckAvailable).Count(&trucksAvailable)
	var activeTrips int64
	h.DB.Model(&models.Trip{}).Where("status <> ?", "completed").Count(&activeTrips)

	httpx.JSON(w, http.StatusOK, map[string]int64{
		"branches":         branches,
		"customers":        customers,
		"products":         products,
		"trucks":           trucks,
		"trucks_available": trucksAvailable,
		"drivers":          drivers,
		"orders":           orders,
		"trips":            trips,
		"trips_active":     activeTrips,
	})
}

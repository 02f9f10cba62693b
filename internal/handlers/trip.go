package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/services"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/validation"
)

var (
	errUnknownPlate  = errors.New("unknown plate")
	errTruckBusy     = errors.New("truck not available")
	errUnknownDriver = errors.New("unknown driver")
	errDriverBusy    = errors.New("driver not available")
)

type TripHandler struct {
	DB *gorm.DB
}

func NewTripHandler(db *gorm.DB) *TripHandler { return &TripHandler{DB: db} }

// List: GET /api/trips — paginated envelope.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage, offset := pageParams(r)
	dbq := h.DB.Model(&models.Trip{})
	if b := r.URL.Query().Get("branch"); b != "" {
		dbq = dbq.Where("branch = ?", b)
	}
	if s := r.URL.Query().Get("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	var total int64
	dbq.Count(&total)
	var trips []models.Trip
	if err := dbq.Order("id desc").Limit(perPage).Offset(offset).Find(&trips).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_trips", nil)
		return
	}
	httpx.Paginated(w, trips, total, page, perPage)
}

// Create: POST /api/trips. The whole assignment is one transaction: the truck
// must still be available and the driver active and unassigned when the row is
// written, then both fleet records flip in the same commit.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("branch", input.Branch, v)
	validation.Required("truck_plate", input.TruckPlate, v)
	validation.RequiredID("driver_id", input.DriverID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	var trip models.Trip
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var truck models.Truck
		if err := tx.Where("plate_number = ?", input.TruckPlate).First(&truck).Error; err != nil {
			return errUnknownPlate
		}
		if !truck.Available() {
			return errTruckBusy
		}
		var driver models.Driver
		if err := tx.First(&driver, input.DriverID).Error; err != nil {
			return errUnknownDriver
		}
		if !driver.Available() {
			return errDriverBusy
		}

		tripDate := input.TripDate
		if tripDate.IsZero() {
			tripDate = time.Now()
		}
		trip = models.Trip{
			Branch:        input.Branch,
			TruckID:       truck.ID,
			TruckPlate:    truck.PlateNumber,
			TruckModel:    truck.Model,
			TruckCapacity: truck.CapacityKg,
			DriverID:      driver.ID,
			DriverName:    driver.Name,
			DriverPhone:   driver.Phone,
			CapacityTotal: truck.CapacityKg,
			TripDate:      tripDate,
			Origin:        input.Origin,
			Destination:   input.Destination,
			Status:        "planned",
		}
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}
		if err := tx.Model(&truck).Update("status", models.TruckInTransit).Error; err != nil {
			return err
		}
		return tx.Model(&driver).Update("current_truck", truck.PlateNumber).Error
	})
	switch err {
	case nil:
	case errUnknownPlate:
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"truck_plate": "unknown_plate"})
		return
	case errTruckBusy:
		httpx.JSONError(w, http.StatusConflict, "truck_not_available", nil)
		return
	case errUnknownDriver:
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"driver_id": "unknown_driver"})
		return
	case errDriverBusy:
		httpx.JSONError(w, http.StatusConflict, "driver_not_available", nil)
		return
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "trip_create_failed", nil)
		return
	}
	recordAudit(h.DB, r, "Trip", trip.ID, "create", trip.TruckPlate)
	httpx.JSON(w, http.StatusCreated, trip)
}

// Complete: POST /api/trips/{id}/complete — releases the truck and driver.
func (h *TripHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var trip models.Trip
	if err := h.DB.First(&trip, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if trip.Status == "completed" {
		httpx.JSONError(w, http.StatusConflict, "trip_already_completed", nil)
		return
	}
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&trip).Update("status", "completed").Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Truck{}).Where("id = ?", trip.TruckID).
			Update("status", models.TruckAvailable).Error; err != nil {
			return err
		}
		return tx.Model(&models.Driver{}).Where("id = ?", trip.DriverID).
			Update("current_truck", "").Error
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "trip_complete_failed", nil)
		return
	}
	trip.Status = "completed"
	httpx.JSON(w, http.StatusOK, trip)
}

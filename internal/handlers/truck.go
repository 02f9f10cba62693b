package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/validation"
)

type TruckHandler struct {
	DB *gorm.DB
}

func NewTruckHandler(db *gorm.DB) *TruckHandler { return &TruckHandler{DB: db} }

// List: GET /api/trucks — bare array. Supports ?status= and ?branch= so
// the trip form can ask for available trucks at one branch.
func (h *TruckHandler) List(w http.ResponseWriter, r *http.Request) {
	dbq := h.DB.Model(&models.Truck{})
	if s := r.URL.Query().Get("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	if b := r.URL.Query().Get("branch"); b != "" {
		dbq = dbq.Where("branch = ?", b)
	}
	var trucks []models.Truck
	if err := dbq.Order("plate_number asc").Find(&trucks).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_trucks", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, trucks)
}

func (h *TruckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		PlateNumber string  `json:"plate_number"`
		Model       string  `json:"model"`
		CapacityKg  float64 `json:"capacity_kg"`
		Branch      string  `json:"branch"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("plate_number", input.PlateNumber, v)
	validation.Required("branch", input.Branch, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	t := models.Truck{
		PlateNumber: strings.ToUpper(strings.TrimSpace(input.PlateNumber)),
		Model:       input.Model,
		CapacityKg:  input.CapacityKg,
		Branch:      input.Branch,
		Status:      models.TruckAvailable,
	}
	if err := h.DB.Create(&t).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			httpx.JSONError(w, http.StatusConflict, "plate_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "truck_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, t)
}

func (h *TruckHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var t models.Truck
	if err := h.DB.First(&t, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var body struct {
		Model      *string  `json:"model"`
		CapacityKg *float64 `json:"capacity_kg"`
		Branch     *string  `json:"branch"`
		Status     *string  `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if body.Status != nil {
		v := validation.Violations{}
		validation.OneOf("status", *body.Status, v, models.TruckAvailable, models.TruckInTransit, models.TruckMaintenance)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		t.Status = *body.Status
	}
	if body.Model != nil {
		t.Model = *body.Model
	}
	if body.CapacityKg != nil {
		t.CapacityKg = *body.CapacityKg
	}
	if body.Branch != nil {
		t.Branch = *body.Branch
	}
	if err := h.DB.Save(&t).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

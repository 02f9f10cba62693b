package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/validation"
)

type DriverHandler struct {
	DB *gorm.DB
}

func NewDriverHandler(db *gorm.DB) *DriverHandler { return &DriverHandler{DB: db} }

// List: GET /api/drivers — bare array, ?status= filter.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	dbq := h.DB.Model(&models.Driver{})
	if s := r.URL.Query().Get("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	if b := r.URL.Query().Get("branch"); b != "" {
		dbq = dbq.Where("branch = ?", b)
	}
	// unassigned=true narrows to drivers with no truck, for the trip form
	if r.URL.Query().Get("unassigned") == "true" {
		dbq = dbq.Where("current_truck = ''")
	}
	var drivers []models.Driver
	if err := dbq.Order("name asc").Find(&drivers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_drivers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, drivers)
}

func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		LicenseNo string `json:"license_no"`
		Branch    string `json:"branch"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.Required("license_no", input.LicenseNo, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	d := models.Driver{
		Name:      input.Name,
		Phone:     input.Phone,
		LicenseNo: input.LicenseNo,
		Branch:    input.Branch,
		Status:    models.DriverActive,
	}
	if err := h.DB.Create(&d).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "driver_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, d)
}

func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var d models.Driver
	if err := h.DB.First(&d, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var body struct {
		Name   *string `json:"name"`
		Phone  *string `json:"phone"`
		Branch *string `json:"branch"`
		Status *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if body.Status != nil {
		v := validation.Violations{}
		validation.OneOf("status", *body.Status, v, models.DriverActive, models.DriverInactive)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		d.Status = *body.Status
	}
	if body.Name != nil {
		d.Name = *body.Name
	}
	if body.Phone != nil {
		d.Phone = *body.Phone
	}
	if body.Branch != nil {
		d.Branch = *body.Branch
	}
	if err := h.DB.Save(&d).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, d)
}

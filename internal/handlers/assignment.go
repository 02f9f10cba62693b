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

type AssignmentHandler struct {
	DB *gorm.DB
}

func NewAssignmentHandler(db *gorm.DB) *AssignmentHandler { return &AssignmentHandler{DB: db} }

// List: GET /api/assignments — bare array, ?user_id= / ?customer_id= filters.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	dbq := h.DB.Model(&models.Assignment{})
	if u := r.URL.Query().Get("user_id"); u != "" {
		dbq = dbq.Where("user_id = ?", u)
	}
	if c := r.URL.Query().Get("customer_id"); c != "" {
		dbq = dbq.Where("customer_id = ?", c)
	}
	var assignments []models.Assignment
	if err := dbq.Order("id asc").Find(&assignments).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_assignments", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, assignments)
}

// Create: POST /api/assignments — only marketing users can own customers.
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserID     uint `json:"user_id"`
		CustomerID uint `json:"customer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.RequiredID("user_id", input.UserID, v)
	validation.RequiredID("customer_id", input.CustomerID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var user models.User
	if err := h.DB.Preload("Role").First(&user, input.UserID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"user_id": "unknown_user"})
		return
	}
	if user.Role.Kind != models.RoleKindMarketing {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"user_id": "not_marketing_role"})
		return
	}
	var customer models.Customer
	if err := h.DB.First(&customer, input.CustomerID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"customer_id": "unknown_customer"})
		return
	}
	a := models.Assignment{UserID: input.UserID, CustomerID: input.CustomerID}
	if err := h.DB.Create(&a).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			httpx.JSONError(w, http.StatusConflict, "assignment_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "assignment_create_failed", nil)
		return
	}
	recordAudit(h.DB, r, "Assignment", a.ID, "create", "")
	httpx.JSON(w, http.StatusCreated, a)
}

// Delete: DELETE /api/assignments/{id}
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	res := h.DB.Delete(&models.Assignment{}, id)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	recordAudit(h.DB, r, "Assignment", id, "delete", "")
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

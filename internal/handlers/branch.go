package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/validation"
)

var likeSafeRegex = regexp.MustCompile(`[^a-zA-Z0-9 @.\-_]`)

// likePattern strips anything unsafe from a search term and builds the LIKE
// arg. @ and . stay allowed so users can be found by full email address.
func likePattern(q string) string {
	safe := likeSafeRegex.ReplaceAllString(q, "")
	return "%" + strings.ToLower(safe) + "%"
}

type BranchHandler struct {
	DB *gorm.DB
}

func NewBranchHandler(db *gorm.DB) *BranchHandler { return &BranchHandler{DB: db} }

// List: GET /api/branches — bare array, small reference list.
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	dbq := activeFilter(r, h.DB)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		like := likePattern(q)
		dbq = dbq.Where("lower(name) LIKE ? OR lower(code) LIKE ? OR lower(city) LIKE ?", like, like, like)
	}
	var branches []models.Branch
	if err := dbq.Order("code asc").Find(&branches).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_branches", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, branches)
}

func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code    string `json:"code"`
		Name    string `json:"name"`
		City    string `json:"city"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("code", input.Code, v)
	validation.Required("name", input.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	b := models.Branch{
		Code:     strings.ToUpper(strings.TrimSpace(input.Code)),
		Name:     input.Name,
		City:     input.City,
		Address:  input.Address,
		Phone:    input.Phone,
		IsActive: true,
	}
	if err := h.DB.Create(&b).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			httpx.JSONError(w, http.StatusConflict, "code_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "branch_create_failed", nil)
		return
	}
	recordAudit(h.DB, r, "Branch", b.ID, "create", b.Code)
	httpx.JSON(w, http.StatusCreated, b)
}

func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var b models.Branch
	if err := h.DB.First(&b, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var body struct {
		Name    *string `json:"name"`
		City    *string `json:"city"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if body.Name != nil {
		b.Name = *body.Name
	}
	if body.City != nil {
		b.City = *body.City
	}
	if body.Address != nil {
		b.Address = *body.Address
	}
	if body.Phone != nil {
		b.Phone = *body.Phone
	}
	if err := h.DB.Save(&b).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// ToggleActive: POST /api/branches/toggle?id=...
func (h *BranchHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var b models.Branch
	if err := h.DB.First(&b, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	b.IsActive = !b.IsActive
	if err := h.DB.Save(&b).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	recordAudit(h.DB, r, "Branch", b.ID, "toggle_active", "")
	httpx.JSON(w, http.StatusOK, b)
}

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

type CustomerHandler struct {
	DB *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler { return &CustomerHandler{DB: db} }

// List: GET /api/customers — paginated envelope, filterable by branch_id/is_active/q.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage, offset := pageParams(r)
	dbq := activeFilter(r, h.DB.Model(&models.Customer{}))
	if branchID := idParam(r, "branch_id"); branchID != 0 {
		dbq = dbq.Where("branch_id = ?", branchID)
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		like := likePattern(q)
		dbq = dbq.Where("lower(name) LIKE ? OR lower(contact) LIKE ?", like, like)
	}
	var total int64
	dbq.Count(&total)
	var customers []models.Customer
	if err := dbq.Order("id desc").Limit(perPage).Offset(offset).Find(&customers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	httpx.Paginated(w, customers, total, page, perPage)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Contact  string `json:"contact"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		BranchID uint   `json:"branch_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.RequiredID("branch_id", input.BranchID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var branch models.Branch
	if err := h.DB.First(&branch, input.BranchID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "branch_not_found", nil)
		return
	}
	c := models.Customer{
		Name:     input.Name,
		Contact:  input.Contact,
		Phone:    input.Phone,
		Email:    input.Email,
		BranchID: branch.ID,
		IsActive: true,
	}
	if err := h.DB.Create(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "customer_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var c models.Customer
	if err := h.DB.First(&c, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var body struct {
		Name     *string `json:"name"`
		Contact  *string `json:"contact"`
		Phone    *string `json:"phone"`
		Email    *string `json:"email"`
		BranchID *uint   `json:"branch_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if body.Name != nil {
		c.Name = *body.Name
	}
	if body.Contact != nil {
		c.Contact = *body.Contact
	}
	if body.Phone != nil {
		c.Phone = *body.Phone
	}
	if body.Email != nil {
		c.Email = *body.Email
	}
	if body.BranchID != nil && *body.BranchID != 0 {
		c.BranchID = *body.BranchID
	}
	if err := h.DB.Save(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var c models.Customer
	if err := h.DB.First(&c, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	c.IsActive = !c.IsActive
	if err := h.DB.Save(&c).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	recordAudit(h.DB, r, "Customer", c.ID, "toggle_active", "")
	httpx.JSON(w, http.StatusOK, c)
}

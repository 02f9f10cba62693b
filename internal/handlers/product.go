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

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

// List: GET /api/products — paginated envelope. The order form consumes this
// as its catalog, so fixed-weight products must carry their unit weight.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage, offset := pageParams(r)
	dbq := activeFilter(r, h.DB.Model(&models.Product{}))
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		dbq = dbq.Where("lower(name) LIKE ?", likePattern(q))
	}
	var total int64
	dbq.Count(&total)
	var products []models.Product
	if err := dbq.Order("id desc").Limit(perPage).Offset(offset).Find(&products).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.Paginated(w, products, total, page, perPage)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name       string  `json:"name"`
		WeightMode string  `json:"weight_mode"`
		UnitWeight float64 `json:"unit_weight"`
		UnitPrice  float64 `json:"unit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if input.WeightMode == "" {
		input.WeightMode = models.WeightModeVariable
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.PositiveFloat("unit_price", input.UnitPrice, v)
	validation.OneOf("weight_mode", input.WeightMode, v, models.WeightModeFixed, models.WeightModeVariable)
	if input.WeightMode == models.WeightModeFixed {
		validation.PositiveFloat("unit_weight", input.UnitWeight, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Product{
		Name:       input.Name,
		WeightMode: input.WeightMode,
		UnitWeight: input.UnitWeight,
		UnitPrice:  input.UnitPrice,
		IsActive:   true,
	}
	if err := h.DB.Create(&p).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			httpx.JSONError(w, http.StatusConflict, "name_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "product_create_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update allows editing price, weight mode and unit weight; name immutable
// because order rows reference products by name in the form.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var p models.Product
	if err := h.DB.First(&p, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var body struct {
		WeightMode *string  `json:"weight_mode"`
		UnitWeight *float64 `json:"unit_weight"`
		UnitPrice  *float64 `json:"unit_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if body.WeightMode != nil {
		v := validation.Violations{}
		validation.OneOf("weight_mode", *body.WeightMode, v, models.WeightModeFixed, models.WeightModeVariable)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		p.WeightMode = *body.WeightMode
	}
	if body.UnitWeight != nil {
		p.UnitWeight = *body.UnitWeight
	}
	if body.UnitPrice != nil {
		p.UnitPrice = *body.UnitPrice
	}
	if err := h.DB.Save(&p).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Delete soft-deletes a product.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.DB.Where("id = ?", id).Delete(&models.Product{}).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	recordAudit(h.DB, r, "Product", id, "delete", "")
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

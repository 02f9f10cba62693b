package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/services"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/validation"
)

type OrderHandler struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{DB: db, Orders: &services.OrderService{}}
}

// List: GET /api/orders — paginated envelope with items preloaded.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage, offset := pageParams(r)
	dbq := h.DB.Model(&models.Order{})
	if b := r.URL.Query().Get("branch_id"); b != "" {
		dbq = dbq.Where("branch_id = ?", b)
	}
	if c := r.URL.Query().Get("customer_id"); c != "" {
		dbq = dbq.Where("customer_id = ?", c)
	}
	if s := r.URL.Query().Get("status"); s != "" {
		dbq = dbq.Where("status = ?", s)
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		dbq = dbq.Where("lower(order_number) LIKE ?", likePattern(q))
	}
	var total int64
	dbq.Count(&total)
	var orders []models.Order
	if err := dbq.Preload("Items").Order("id desc").Limit(perPage).Offset(offset).Find(&orders).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	httpx.Paginated(w, orders, total, page, perPage)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var o models.Order
	if err := h.DB.Preload("Items").First(&o, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

// Create: POST /api/orders. Accepts the submitted order with at least one
// item; totals are recomputed server-side and never trusted from the client.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := validation.Violations{}
	validation.Required("order_number", input.OrderNumber, v)
	validation.RequiredID("customer_id", input.CustomerID, v)
	validation.RequiredID("branch_id", input.BranchID, v)
	if len(input.Items) == 0 {
		v["items"] = "at_least_one_item"
	}
	for _, it := range input.Items {
		if it.ProductID == 0 {
			v["items"] = "missing_product"
		}
		if it.Quantity < 1 {
			v["items"] = "quantity_below_minimum"
		}
		if it.Weight <= 0 {
			v["items"] = "weight_must_be_positive"
		}
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	var branch models.Branch
	if err := h.DB.First(&branch, input.BranchID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"branch_id": "unknown_branch"})
		return
	}
	var customer models.Customer
	if err := h.DB.First(&customer, input.CustomerID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"customer_id": "unknown_customer"})
		return
	}
	if customer.BranchID != branch.ID {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"customer_id": "customer_not_in_branch"})
		return
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		var p models.Product
		if err := h.DB.First(&p, it.ProductID).Error; err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"items": "unknown_product"})
			return
		}
		items = append(items, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Weight:    it.Weight,
		})
	}
	units, weight := h.Orders.ComputeTotals(items)

	deliveryDate := input.DeliveryDate
	if deliveryDate.IsZero() {
		deliveryDate = time.Now().AddDate(0, 0, 1)
	}
	order := models.Order{
		OrderNumber:         input.OrderNumber,
		CustomerID:          input.CustomerID,
		BranchID:            input.BranchID,
		Status:              "created",
		OrderType:           orDefault(input.OrderType, "standard"),
		Priority:            orDefault(input.Priority, "normal"),
		TotalWeight:         weight,
		TotalVolume:         input.TotalVolume,
		PackageCount:        units,
		PaymentType:         orDefault(input.PaymentType, "invoice"),
		PickupDate:          input.PickupDate,
		DeliveryDate:        &deliveryDate,
		SpecialInstructions: input.SpecialInstructions,
		Items:               items,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			httpx.JSONError(w, http.StatusConflict, "order_number_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "order_create_failed", nil)
		return
	}
	recordAudit(h.DB, r, "Order", order.ID, "create", order.OrderNumber)
	httpx.JSON(w, http.StatusCreated, order)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/validation"
)

var (
	ErrLastItem       = errors.New("an order needs at least one item row")
	ErrUnknownItem    = errors.New("no item row with that id")
	ErrWeightLocked   = errors.New("weight is fixed by the product catalog")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrUnknownProduct = errors.New("item references a product not in the catalog")
)

// CatalogProduct is the slice of the product catalog the draft needs to
// resolve names and auto-fill fixed weights.
type CatalogProduct struct {
	ID         uint
	Name       string
	WeightMode string
	UnitWeight float64
	UnitPrice  float64
}

func (p CatalogProduct) fixedWeight() bool { return p.WeightMode == "fixed" }

// OrderItemDraft is one editable row of the order form. IDs are generated
// client-side so rows can be addressed before anything is persisted.
type OrderItemDraft struct {
	ID           string
	ProductName  string
	Weight       float64 // per-unit weight, kg
	Quantity     int
	WeightLocked bool // true once a fixed-weight product is selected
}

// LineTotal is derived, never stored.
func (it OrderItemDraft) LineTotal() float64 { return it.Weight * float64(it.Quantity) }

// OrderDraft collects everything needed to submit one order. It is created
// empty with a single blank row, mutated by the operator, and discarded on
// cancel or after a successful submit.
type OrderDraft struct {
	OrderNumber string // generated, immutable
	DueDays     int
	BranchID    uint
	CustomerID  uint
	Notes       string
	Items       []OrderItemDraft

	catalog    []CatalogProduct
	submitting bool
}

// Totals are recomputed from the rows on demand.
type Totals struct {
	TotalUnits  int
	TotalWeight float64
}

// NewOrderDraft opens a fresh draft with one blank item row.
func NewOrderDraft(catalog []CatalogProduct) *OrderDraft {
	return &OrderDraft{
		OrderNumber: generateOrderNumber(),
		DueDays:     1,
		Items:       []OrderItemDraft{blankItem()},
		catalog:     catalog,
	}
}

func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func blankItem() OrderItemDraft {
	return OrderItemDraft{ID: uuid.NewString(), Quantity: 1}
}

// SelectBranch sets the branch. Changing it invalidates everything scoped to
// the old branch: the customer selection is cleared and the rows reset to a
// single blank one.
func (d *OrderDraft) SelectBranch(branchID uint) {
	if d.BranchID == branchID {
		return
	}
	d.BranchID = branchID
	d.CustomerID = 0
	d.Items = []OrderItemDraft{blankItem()}
}

func (d *OrderDraft) SelectCustomer(customerID uint) { d.CustomerID = customerID }

// SetDueDays keeps the invariant DueDays >= 1.
func (d *OrderDraft) SetDueDays(days int) {
	if days < 1 {
		days = 1
	}
	d.DueDays = days
}

// AddItem appends a blank row and returns its id.
func (d *OrderDraft) AddItem() string {
	it := blankItem()
	d.Items = append(d.Items, it)
	return it.ID
}

// RemoveItem removes a row; the last remaining row cannot be removed.
func (d *OrderDraft) RemoveItem(id string) error {
	if len(d.Items) <= 1 {
		return ErrLastItem
	}
	for i := range d.Items {
		if d.Items[i].ID == id {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return nil
		}
	}
	return ErrUnknownItem
}

func (d *OrderDraft) item(id string) (*OrderItemDraft, error) {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return &d.Items[i], nil
		}
	}
	return nil, ErrUnknownItem
}

// SetItemProduct selects a catalog product for the row. Fixed-weight products
// copy the catalog weight into the row and lock it; variable-weight products
// unlock the weight and leave whatever the operator typed.
func (d *OrderDraft) SetItemProduct(id, productName string) error {
	it, err := d.item(id)
	if err != nil {
		return err
	}
	it.ProductName = productName
	if p, ok := d.lookup(productName); ok && p.fixedWeight() {
		it.Weight = p.UnitWeight
		it.WeightLocked = true
	} else {
		it.WeightLocked = false
	}
	return nil
}

// SetItemWeight rejects edits on rows whose weight comes from the catalog.
func (d *OrderDraft) SetItemWeight(id string, weight float64) error {
	it, err := d.item(id)
	if err != nil {
		return err
	}
	if it.WeightLocked {
		return ErrWeightLocked
	}
	it.Weight = weight
	return nil
}

func (d *OrderDraft) SetItemQuantity(id string, quantity int) error {
	it, err := d.item(id)
	if err != nil {
		return err
	}
	it.Quantity = quantity
	return nil
}

func (d *OrderDraft) lookup(productName string) (CatalogProduct, bool) {
	for _, p := range d.catalog {
		if p.Name == productName {
			return p, true
		}
	}
	return CatalogProduct{}, false
}

// ComputeTotals is pure over the rows: total units and total weight.
func (d *OrderDraft) ComputeTotals() Totals {
	var t Totals
	for _, it := range d.Items {
		t.TotalUnits += it.Quantity
		t.TotalWeight += it.LineTotal()
	}
	return t
}

// Validate reports per-field violations; an empty map means submittable.
func (d *OrderDraft) Validate() validation.Violations {
	v := validation.Violations{}
	validation.RequiredID("branch_id", d.BranchID, v)
	validation.RequiredID("customer_id", d.CustomerID, v)
	validation.Required("order_number", d.OrderNumber, v)
	if len(d.Items) == 0 {
		v["items"] = "required"
		return v
	}
	for _, it := range d.Items {
		if strings.TrimSpace(it.ProductName) == "" {
			v["items"] = "missing_product"
			return v
		}
		if it.Weight <= 0 {
			v["items"] = "weight_must_be_positive"
			return v
		}
		if it.Quantity < 1 {
			v["items"] = "quantity_below_minimum"
			return v
		}
	}
	return v
}

// BeginSubmit latches the draft while its single create request is in flight,
// so a double-click cannot issue two submissions.
func (d *OrderDraft) BeginSubmit() error {
	if d.submitting {
		return ErrSubmitInFlight
	}
	d.submitting = true
	return nil
}

// EndSubmit releases the latch whether the request succeeded or failed; the
// failed case leaves the draft intact for correction.
func (d *OrderDraft) EndSubmit() { d.submitting = false }

func (d *OrderDraft) Submitting() bool { return d.submitting }

// CreateOrderRequest is the wire payload of the order-creation endpoint.
type CreateOrderRequest struct {
	OrderNumber         string                   `json:"order_number"`
	CustomerID          uint                     `json:"customer_id"`
	BranchID            uint                     `json:"branch_id"`
	OrderType           string                   `json:"order_type"`
	Priority            string                   `json:"priority"`
	TotalWeight         float64                  `json:"total_weight"`
	TotalVolume         float64                  `json:"total_volume"`
	PackageCount        int                      `json:"package_count"`
	PaymentType         string                   `json:"payment_type"`
	PickupDate          *time.Time               `json:"pickup_date"`
	DeliveryDate        time.Time                `json:"delivery_date"`
	Items               []CreateOrderItemRequest `json:"items"`
	SpecialInstructions string                   `json:"special_instructions"`
}

type CreateOrderItemRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Weight    float64 `json:"weight"`
}

// BuildCreateOrderRequest validates the draft and composes the backend
// payload: product names resolved to ids, totals computed, delivery date
// offset by DueDays from now.
func (d *OrderDraft) BuildCreateOrderRequest(now time.Time) (CreateOrderRequest, error) {
	if v := d.Validate(); !v.Empty() {
		return CreateOrderRequest{}, errors.New("draft_invalid")
	}
	items := make([]CreateOrderItemRequest, 0, len(d.Items))
	for _, it := range d.Items {
		p, ok := d.lookup(it.ProductName)
		if !ok {
			return CreateOrderRequest{}, ErrUnknownProduct
		}
		items = append(items, CreateOrderItemRequest{
			ProductID: p.ID,
			Quantity:  it.Quantity,
			UnitPrice: p.UnitPrice,
			Weight:    it.Weight,
		})
	}
	totals := d.ComputeTotals()
	return CreateOrderRequest{
		OrderNumber:         d.OrderNumber,
		CustomerID:          d.CustomerID,
		BranchID:            d.BranchID,
		OrderType:           "standard",
		Priority:            "normal",
		TotalWeight:         totals.TotalWeight,
		PackageCount:        totals.TotalUnits,
		PaymentType:         "invoice",
		DeliveryDate:        now.AddDate(0, 0, d.DueDays),
		Items:               items,
		SpecialInstructions: d.Notes,
	}, nil
}

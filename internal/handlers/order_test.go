package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/services"
)

func TestOrderCreateComputesTotals(t *testing.T) {
	conn := testDB(t)
	b := seedBranch(t, conn, "NBO-01")
	c := seedCustomer(t, conn, b.ID, "Acme Distribution")
	p1 := seedProduct(t, conn, "Cement 50kg", models.WeightModeFixed, 50, 9.5)
	p2 := seedProduct(t, conn, "Loose gravel", models.WeightModeVariable, 0, 4)
	h := NewOrderHandler(conn)

	req := services.CreateOrderRequest{
		OrderNumber: "ORD-TEST-001",
		CustomerID:  c.ID,
		BranchID:    b.ID,
		Items: []services.CreateOrderItemRequest{
			{ProductID: p1.ID, Quantity: 2, UnitPrice: 9.5, Weight: 3},
			{ProductID: p2.ID, Quantity: 1, UnitPrice: 4, Weight: 5},
		},
	}
	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/orders", req))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var created models.Order
	decodeBody(t, w, &created)
	if created.PackageCount != 3 {
		t.Fatalf("package_count = %d, want 3", created.PackageCount)
	}
	if created.TotalWeight != 11.0 {
		t.Fatalf("total_weight = %v, want 11.0", created.TotalWeight)
	}
	if len(created.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(created.Items))
	}
	if created.OrderType != "standard" || created.Priority != "normal" || created.PaymentType != "invoice" {
		t.Fatalf("defaults not applied: %+v", created)
	}
	if created.DeliveryDate == nil {
		t.Fatal("delivery_date not defaulted")
	}
}

func TestOrderCreateRejectsEmptyItems(t *testing.T) {
	conn := testDB(t)
	b := seedBranch(t, conn, "NBO-01")
	c := seedCustomer(t, conn, b.ID, "Acme")
	h := NewOrderHandler(conn)

	req := services.CreateOrderRequest{OrderNumber: "ORD-X", CustomerID: c.ID, BranchID: b.ID}
	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/orders", req))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, w, &resp)
	if resp.Details["items"] != "at_least_one_item" {
		t.Fatalf("unexpected details: %v", resp.Details)
	}
}

func TestOrderCreateRejectsCustomerFromOtherBranch(t *testing.T) {
	conn := testDB(t)
	b1 := seedBranch(t, conn, "NBO-01")
	b2 := seedBranch(t, conn, "MSA-01")
	c := seedCustomer(t, conn, b2.ID, "Coast Traders")
	p := seedProduct(t, conn, "Cement 50kg", models.WeightModeFixed, 50, 9.5)
	h := NewOrderHandler(conn)

	req := services.CreateOrderRequest{
		OrderNumber: "ORD-Y", CustomerID: c.ID, BranchID: b1.ID,
		Items: []services.CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: 9.5, Weight: 50}},
	}
	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/orders", req))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestOrderCreateDuplicateNumberConflicts(t *testing.T) {
	conn := testDB(t)
	b := seedBranch(t, conn, "NBO-01")
	c := seedCustomer(t, conn, b.ID, "Acme")
	p := seedProduct(t, conn, "Cement 50kg", models.WeightModeFixed, 50, 9.5)
	h := NewOrderHandler(conn)

	req := services.CreateOrderRequest{
		OrderNumber: "ORD-DUP", CustomerID: c.ID, BranchID: b.ID,
		Items: []services.CreateOrderItemRequest{{ProductID: p.ID, Quantity: 1, UnitPrice: 9.5, Weight: 50}},
	}
	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/orders", req))
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201 got %d", w.Code)
	}
	w = httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/orders", req))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestOrderListEnvelope(t *testing.T) {
	conn := testDB(t)
	b := seedBranch(t, conn, "NBO-01")
	c := seedCustomer(t, conn, b.ID, "Acme")
	conn.Create(&models.Order{OrderNumber: "ORD-1", CustomerID: c.ID, BranchID: b.ID, Status: "created"})
	conn.Create(&models.Order{OrderNumber: "ORD-2", CustomerID: c.ID, BranchID: b.ID, Status: "created"})
	h := NewOrderHandler(conn)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/orders?per_page=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var env struct {
		Items   []models.Order `json:"items"`
		Total   int64          `json:"total"`
		Page    int            `json:"page"`
		PerPage int            `json:"per_page"`
		Pages   int            `json:"pages"`
	}
	decodeBody(t, w, &env)
	if env.Total != 2 || len(env.Items) != 1 || env.Pages != 2 {
		t.Fatalf("unexpected envelope: total=%d items=%d pages=%d", env.Total, len(env.Items), env.Pages)
	}
}

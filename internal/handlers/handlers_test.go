package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Role{}, &models.User{}, &models.EmployeeProfile{}, &models.Assignment{},
		&models.Branch{}, &models.Customer{}, &models.Product{},
		&models.Truck{}, &models.Driver{},
		&models.Order{}, &models.OrderItem{}, &models.Trip{},
		&models.OrderDocument{}, &models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func jsonReq(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &body)
	r.Header.Set("Content-Type", "application/json")
	return r
}

func withID(r *http.Request, id uint) *http.Request {
	r.SetPathValue("id", strconv.FormatUint(uint64(id), 10))
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func seedBranch(t *testing.T, conn *gorm.DB, code string) models.Branch {
	t.Helper()
	b := models.Branch{Code: code, Name: "Branch " + code, City: "Nairobi", IsActive: true}
	if err := conn.Create(&b).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	return b
}

func seedCustomer(t *testing.T, conn *gorm.DB, branchID uint, name string) models.Customer {
	t.Helper()
	c := models.Customer{Name: name, BranchID: branchID, IsActive: true}
	if err := conn.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func seedProduct(t *testing.T, conn *gorm.DB, name, mode string, weight, price float64) models.Product {
	t.Helper()
	p := models.Product{Name: name, WeightMode: mode, UnitWeight: weight, UnitPrice: price, IsActive: true}
	if err := conn.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func seedTruck(t *testing.T, conn *gorm.DB, plate, branch, status string) models.Truck {
	t.Helper()
	tr := models.Truck{PlateNumber: plate, Model: "Isuzu FRR", CapacityKg: 8000, Branch: branch, Status: status}
	if err := conn.Create(&tr).Error; err != nil {
		t.Fatalf("seed truck: %v", err)
	}
	return tr
}

func seedDriver(t *testing.T, conn *gorm.DB, name, branch, status, currentTruck string) models.Driver {
	t.Helper()
	d := models.Driver{Name: name, Branch: branch, Status: status, CurrentTruck: currentTruck, LicenseNo: "DL-" + name}
	if err := conn.Create(&d).Error; err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return d
}

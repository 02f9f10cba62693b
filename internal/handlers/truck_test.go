package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

func TestTruckCreateDuplicatePlate(t *testing.T) {
	conn := testDB(t)
	h := NewTruckHandler(conn)

	payload := map[string]any{"plate_number": "KDA-001A", "model": "Volvo FH", "capacity_kg": 12000, "branch": "NBO-01"}
	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/trucks", payload))
	if w.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	w = httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/trucks", payload))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &resp)
	if resp.Error != "plate_already_exists" {
		t.Fatalf("error = %q, want plate_already_exists", resp.Error)
	}
}

func TestTruckCreateUppercasesPlate(t *testing.T) {
	conn := testDB(t)
	h := NewTruckHandler(conn)

	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/trucks", map[string]any{"plate_number": " kda-002b ", "branch": "NBO-01"}))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}
	var created models.Truck
	decodeBody(t, w, &created)
	if created.PlateNumber != "KDA-002B" {
		t.Fatalf("plate = %q, want KDA-002B", created.PlateNumber)
	}
	if created.Status != models.TruckAvailable {
		t.Fatalf("status = %q, want available", created.Status)
	}
}

func TestTruckListFilters(t *testing.T) {
	conn := testDB(t)
	seedTruck(t, conn, "KDA-100A", "NBO-01", models.TruckAvailable)
	seedTruck(t, conn, "KDA-200B", "NBO-01", models.TruckInTransit)
	seedTruck(t, conn, "KDA-300C", "MSA-01", models.TruckAvailable)
	h := NewTruckHandler(conn)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/trucks?status=available&branch=NBO-01", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var trucks []models.Truck
	decodeBody(t, w, &trucks)
	if len(trucks) != 1 || trucks[0].PlateNumber != "KDA-100A" {
		t.Fatalf("unexpected list: %+v", trucks)
	}
}

func TestTruckUpdateStatusValidation(t *testing.T) {
	conn := testDB(t)
	tr := seedTruck(t, conn, "KDA-400D", "NBO-01", models.TruckAvailable)
	h := NewTruckHandler(conn)

	w := httptest.NewRecorder()
	h.Update(w, withID(jsonReq(t, http.MethodPut, "/api/trucks", map[string]any{"status": "flying"}), tr.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Update(w, withID(jsonReq(t, http.MethodPut, "/api/trucks", map[string]any{"status": models.TruckMaintenance}), tr.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var after models.Truck
	conn.First(&after, tr.ID)
	if after.Status != models.TruckMaintenance {
		t.Fatalf("status = %q, want maintenance", after.Status)
	}
}

package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

func TestDeliveryProofURLsLocalVsPresigned(t *testing.T) {
	conn := testDB(t)
	b := seedBranch(t, conn, "NBO-01")
	c := seedCustomer(t, conn, b.ID, "Acme")
	o := models.Order{OrderNumber: "ORD-DOC-1", CustomerID: c.ID, BranchID: b.ID, Status: "created"}
	if err := conn.Create(&o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	local := models.OrderDocument{OrderID: o.ID, Kind: models.DocKindDeliveryProof, Name: "pod.jpg", MimeType: "image/jpeg", Path: "/tmp/pod.jpg"}
	external := models.OrderDocument{OrderID: o.ID, Kind: models.DocKindDeliveryProof, Name: "pod.pdf", MimeType: "application/pdf",
		StorageURL: "https://bucket.s3.amazonaws.com/pod.pdf?X-Amz-Signature=abc"}
	conn.Create(&local)
	conn.Create(&external)
	// a non-proof document must not leak into the proof listing
	conn.Create(&models.OrderDocument{OrderID: o.ID, Kind: "invoice", Name: "inv.pdf"})

	h := NewDocumentHandler(conn, t.TempDir())
	w := httptest.NewRecorder()
	h.DeliveryProofs(w, withID(httptest.NewRequest(http.MethodGet, "/api/orders/documents", nil), o.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Documents []struct {
			ID          uint   `json:"id"`
			DownloadURL string `json:"download_url"`
		} `json:"documents"`
		Total int `json:"total"`
	}
	decodeBody(t, w, &resp)
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	for _, d := range resp.Documents {
		if d.ID == local.ID {
			want := fmt.Sprintf("/api/documents/%d/download", local.ID)
			if d.DownloadURL != want {
				t.Fatalf("local url = %q, want %q", d.DownloadURL, want)
			}
		}
		if d.ID == external.ID && !strings.Contains(d.DownloadURL, "X-Amz-Signature") {
			t.Fatalf("external url must be handed out as-is, got %q", d.DownloadURL)
		}
	}
}

func TestUploadThenDownloadRoundTrip(t *testing.T) {
	conn := testDB(t)
	b := seedBranch(t, conn, "NBO-01")
	c := seedCustomer(t, conn, b.ID, "Acme")
	o := models.Order{OrderNumber: "ORD-DOC-2", CustomerID: c.ID, BranchID: b.ID, Status: "created"}
	if err := conn.Create(&o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	root := t.TempDir()
	h := NewDocumentHandler(conn, root)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "proof.txt")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	content := "delivered in full, signed by recipient"
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	r := withID(httptest.NewRequest(http.MethodPost, "/api/orders/documents", &body), o.ID)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.Upload(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201 got %d (%s)", w.Code, w.Body.String())
	}
	var uploaded struct {
		ID   uint   `json:"id"`
		Kind string `json:"kind"`
	}
	decodeBody(t, w, &uploaded)
	if uploaded.Kind != models.DocKindDeliveryProof {
		t.Fatalf("kind = %q, want delivery_proof default", uploaded.Kind)
	}

	w = httptest.NewRecorder()
	h.Download(w, withID(httptest.NewRequest(http.MethodGet, "/api/documents/download", nil), uploaded.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("download: expected 200 got %d", w.Code)
	}
	if w.Body.String() != content {
		t.Fatalf("downloaded body = %q, want %q", w.Body.String(), content)
	}

	entries, err := os.ReadDir(root)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected exactly one stored file, got %d (%v)", len(entries), err)
	}
}

func TestDownloadExternalDocumentRejected(t *testing.T) {
	conn := testDB(t)
	b := seedBranch(t, conn, "NBO-01")
	c := seedCustomer(t, conn, b.ID, "Acme")
	o := models.Order{OrderNumber: "ORD-DOC-3", CustomerID: c.ID, BranchID: b.ID, Status: "created"}
	conn.Create(&o)
	doc := models.OrderDocument{OrderID: o.ID, Kind: models.DocKindDeliveryProof, Name: "pod.pdf",
		StorageURL: "https://bucket.storage.googleapis.com/pod.pdf"}
	conn.Create(&doc)

	h := NewDocumentHandler(conn, t.TempDir())
	w := httptest.NewRecorder()
	h.Download(w, withID(httptest.NewRequest(http.MethodGet, "/api/documents/download", nil), doc.ID))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	conn := testDB(t)
	b := seedBranch(t, conn, "NBO-01")
	c := seedCustomer(t, conn, b.ID, "Acme")
	o := models.Order{OrderNumber: "ORD-DOC-4", CustomerID: c.ID, BranchID: b.ID, Status: "created"}
	conn.Create(&o)
	root := t.TempDir()
	h := NewDocumentHandler(conn, root)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "huge.bin")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(make([]byte, maxUploadSize+1)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	r := withID(httptest.NewRequest(http.MethodPost, "/api/orders/documents", &body), o.ID)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.Upload(w, r)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &resp)
	if resp.Error != "file_too_large" {
		t.Fatalf("error = %q, want file_too_large", resp.Error)
	}
	entries, err := os.ReadDir(root)
	if err != nil || len(entries) != 0 {
		t.Fatalf("rejected upload must not leave a staged file, found %d", len(entries))
	}
	var count int64
	conn.Model(&models.OrderDocument{}).Count(&count)
	if count != 0 {
		t.Fatal("rejected upload must not create a document row")
	}
}

package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

const maxUploadSize = 32 << 20

var errFileTooLarge = errors.New("file exceeds upload size cap")

type DocumentHandler struct {
	DB   *gorm.DB
	Root string // local storage root for uploaded files
}

func NewDocumentHandler(db *gorm.DB, root string) *DocumentHandler {
	return &DocumentHandler{DB: db, Root: root}
}

type documentView struct {
	ID          uint   `json:"id"`
	OrderID     uint   `json:"order_id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	MimeType    string `json:"mime_type"`
	DownloadURL string `json:"download_url"`
}

// downloadURL chooses where the consumer should fetch the file from: external
// docs hand out their pre-signed URL as-is, local docs go through the
// authenticated download route.
func downloadURL(d models.OrderDocument) string {
	if d.StorageURL != "" {
		return d.StorageURL
	}
	return fmt.Sprintf("/api/documents/%d/download", d.ID)
}

// DeliveryProofs: GET /api/orders/{id}/documents/delivery-proof
func (h *DocumentHandler) DeliveryProofs(w http.ResponseWriter, r *http.Request) {
	orderID := idParam(r, "id")
	if orderID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var order models.Order
	if err := h.DB.First(&order, orderID).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var docs []models.OrderDocument
	if err := h.DB.Where("order_id = ? AND kind = ?", orderID, models.DocKindDeliveryProof).
		Order("id asc").Find(&docs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_documents", nil)
		return
	}
	views := make([]documentView, 0, len(docs))
	for _, d := range docs {
		views = append(views, documentView{
			ID:          d.ID,
			OrderID:     d.OrderID,
			Kind:        d.Kind,
			Name:        d.Name,
			MimeType:    d.MimeType,
			DownloadURL: downloadURL(d),
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"documents": views, "total": len(views)})
}

// Upload: POST /api/orders/{id}/documents — multipart field "file".
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	orderID := idParam(r, "id")
	if orderID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var order models.Order
	if err := h.DB.First(&order, orderID).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_multipart", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "file_required", nil)
		return
	}
	defer file.Close()

	kind := r.FormValue("kind")
	if kind == "" {
		kind = models.DocKindDeliveryProof
	}
	path, mimeType, err := h.store(file, header)
	if err != nil {
		if errors.Is(err, errFileTooLarge) {
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "file_too_large", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "upload_failed", nil)
		return
	}
	doc := models.OrderDocument{
		OrderID:  orderID,
		Kind:     kind,
		Name:     header.Filename,
		MimeType: mimeType,
		Path:     path,
	}
	if uid, ok := currentUserID(r); ok {
		doc.UploadedBy = uid
	}
	if err := h.DB.Create(&doc).Error; err != nil {
		os.Remove(path)
		httpx.JSONError(w, http.StatusInternalServerError, "upload_failed", nil)
		return
	}
	recordAudit(h.DB, r, "OrderDocument", doc.ID, "upload", doc.Name)
	httpx.JSON(w, http.StatusCreated, documentView{
		ID:          doc.ID,
		OrderID:     doc.OrderID,
		Kind:        doc.Kind,
		Name:        doc.Name,
		MimeType:    doc.MimeType,
		DownloadURL: downloadURL(doc),
	})
}

func (h *DocumentHandler) store(file multipart.File, header *multipart.FileHeader) (string, string, error) {
	if err := os.MkdirAll(h.Root, 0o755); err != nil {
		return "", "", err
	}
	name := uuid.NewString() + filepath.Ext(header.Filename)
	path := filepath.Join(h.Root, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	head = head[:n]
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(head)
	}
	if _, err := dst.Write(head); err != nil {
		os.Remove(path)
		return "", "", err
	}
	// copy one byte past the cap: oversized files are rejected, not cut short
	remaining := int64(maxUploadSize) - int64(n) + 1
	copied, err := io.Copy(dst, io.LimitReader(file, remaining))
	if err != nil {
		os.Remove(path)
		return "", "", err
	}
	if int64(n)+copied > maxUploadSize {
		os.Remove(path)
		return "", "", errFileTooLarge
	}
	return path, mimeType, nil
}

// Download: GET /api/documents/{id}/download — streams local files. External
// documents are never proxied; their pre-signed URL was handed out in the list.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var doc models.OrderDocument
	if err := h.DB.First(&doc, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if doc.Path == "" {
		httpx.JSONError(w, http.StatusNotFound, "document_is_external", nil)
		return
	}
	f, err := os.Open(doc.Path)
	if err != nil {
		httpx.JSONError(w, http.StatusNotFound, "file_missing", nil)
		return
	}
	defer f.Close()
	if doc.MimeType != "" {
		w.Header().Set("Content-Type", doc.MimeType)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Name))
	if _, err := io.Copy(w, f); err != nil {
		// response already started, nothing left to signal
		_ = err
	}
}

package handlers

import (
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/auth"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

// pageParams reads page/per_page query params with the usual clamps.
func pageParams(r *http.Request) (page, perPage, offset int) {
	page = 1
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			page = n
		}
	}
	perPage = 50
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			perPage = n
		}
	}
	return page, perPage, (page - 1) * perPage
}

// idParam parses a positive integer id from a query param or path value.
func idParam(r *http.Request, name string) uint {
	v := r.PathValue(name)
	if v == "" {
		v = r.URL.Query().Get(name)
	}
	if v == "" {
		v = r.FormValue(name)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return uint(n)
}

// activeFilter applies the is_active query param when present.
func activeFilter(r *http.Request, dbq *gorm.DB) *gorm.DB {
	if v := r.URL.Query().Get("is_active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			dbq = dbq.Where("is_active = ?", b)
		}
	}
	return dbq
}

// currentUserID returns the authenticated user id, if any.
func currentUserID(r *http.Request) (uint, bool) {
	return auth.UserIDFromContext(r.Context())
}

// recordAudit writes an audit row; failures are logged, never surfaced.
func recordAudit(db *gorm.DB, r *http.Request, entityType string, entityID uint, action, detail string) {
	uid, _ := auth.UserIDFromContext(r.Context())
	entry := models.AuditLog{UserID: uid, EntityType: entityType, EntityID: entityID, Action: action, Detail: detail}
	if err := db.Create(&entry).Error; err != nil {
		log.WithError(err).Warn("audit write failed")
	}
}

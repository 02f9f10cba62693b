package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/services"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/validation"
)

type ProfileHandler struct {
	DB       *gorm.DB
	Profiles *services.ProfileService
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db, Profiles: services.NewProfileService(db)}
}

// Status: GET /api/profile/status — which step the signed-in user is on.
func (h *ProfileHandler) Status(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	st, err := h.Profiles.Status(uid)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "profile_status_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

// SaveBasic: PUT /api/profile/basic
func (h *ProfileHandler) SaveBasic(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var in services.BasicInfo
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("address", in.Address, v)
	validation.Required("emergency_contact", in.EmergencyContact, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.Profiles.SaveBasic(uid, in); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "profile_save_failed", nil)
		return
	}
	st, _ := h.Profiles.Status(uid)
	httpx.JSON(w, http.StatusOK, st)
}

// SaveRole: PUT /api/profile/role — rejected until the basic step is complete.
func (h *ProfileHandler) SaveRole(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var in services.RoleInfo
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.Profiles.SaveRole(uid, in); err != nil {
		if errors.Is(err, services.ErrBasicIncomplete) {
			httpx.JSONError(w, http.StatusConflict, "basic_step_incomplete", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "profile_save_failed", nil)
		return
	}
	st, _ := h.Profiles.Status(uid)
	httpx.JSON(w, http.StatusOK, st)
}

// ChangePassword: POST /api/profile/password
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var in struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if len(in.NewPassword) < 8 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"new_password": "too_short"})
		return
	}
	var user models.User
	if err := h.DB.First(&user, uid).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)) != nil {
		httpx.JSONError(w, http.StatusForbidden, "wrong_password", nil)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "password_change_failed", nil)
		return
	}
	if err := h.DB.Model(&user).Update("password", string(hash)).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "password_change_failed", nil)
		return
	}
	recordAudit(h.DB, r, "User", uid, "password_change", "")
	httpx.JSON(w, http.StatusOK, map[string]any{"changed": true})
}

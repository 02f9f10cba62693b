package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/validation"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler { return &UserHandler{DB: db} }

type userView struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	RoleID    uint   `json:"role_id"`
	RoleName  string `json:"role_name"`
	RoleKind  string `json:"role_kind"`
	IsActive  bool   `json:"is_active"`
}

func toUserView(u models.User) userView {
	return userView{
		ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName,
		Phone: u.Phone, RoleID: u.RoleID, RoleName: u.Role.Name, RoleKind: u.Role.Kind,
		IsActive: u.IsActive,
	}
}

// List: GET /api/users — paginated envelope, roles preloaded.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage, offset := pageParams(r)
	dbq := activeFilter(r, h.DB.Model(&models.User{}))
	if rid := r.URL.Query().Get("role_id"); rid != "" {
		dbq = dbq.Where("role_id = ?", rid)
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		pat := likePattern(q)
		dbq = dbq.Where("lower(email) LIKE ? OR lower(first_name) LIKE ? OR lower(last_name) LIKE ?", pat, pat, pat)
	}
	var total int64
	dbq.Count(&total)
	var users []models.User
	if err := dbq.Preload("Role").Order("id desc").Limit(perPage).Offset(offset).Find(&users).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_users", nil)
		return
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	httpx.Paginated(w, views, total, page, perPage)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		RoleID    uint   `json:"role_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("email", input.Email, v)
	validation.Required("first_name", input.FirstName, v)
	validation.RequiredID("role_id", input.RoleID, v)
	if len(input.Password) < 8 {
		v["password"] = "too_short"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	var role models.Role
	if err := h.DB.First(&role, input.RoleID).Error; err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"role_id": "unknown_role"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "user_create_failed", nil)
		return
	}
	u := models.User{
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		RoleID:    input.RoleID,
		IsActive:  true,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			httpx.JSONError(w, http.StatusConflict, "email_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "user_create_failed", nil)
		return
	}
	u.Role = role
	recordAudit(h.DB, r, "User", u.ID, "create", u.Email)
	httpx.JSON(w, http.StatusCreated, toUserView(u))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var u models.User
	if err := h.DB.Preload("Role").First(&u, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var body struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
		RoleID    *uint   `json:"role_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if body.FirstName != nil {
		u.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		u.LastName = *body.LastName
	}
	if body.Phone != nil {
		u.Phone = *body.Phone
	}
	if body.RoleID != nil {
		var role models.Role
		if err := h.DB.First(&role, *body.RoleID).Error; err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"role_id": "unknown_role"})
			return
		}
		u.RoleID = *body.RoleID
		u.Role = role
	}
	if err := h.DB.Save(&u).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserView(u))
}

// ToggleActive: POST /api/users/{id}/toggle
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id := idParam(r, "id")
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var u models.User
	if err := h.DB.Preload("Role").First(&u, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	u.IsActive = !u.IsActive
	if err := h.DB.Save(&u).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "update_failed", nil)
		return
	}
	recordAudit(h.DB, r, "User", u.ID, "toggle_active", "")
	httpx.JSON(w, http.StatusOK, toUserView(u))
}

// Roles: GET /api/roles — bare array for the user form's role select.
func (h *UserHandler) Roles(w http.ResponseWriter, r *http.Request) {
	var roles []models.Role
	if err := h.DB.Order("id asc").Find(&roles).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_roles", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, roles)
}

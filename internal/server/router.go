package server

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/auth"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/config"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/handlers"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/httpx"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/middleware"
	"github.com/aayush0327/Logistic-ERP-System-sub002/internal/models"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth double-checks the session's user still exists and is active.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ? AND is_active = ?", uid, true).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	protected := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	ah := handlers.NewAuthHandler(db)
	mux.HandleFunc("POST /api/auth/login", ah.Login)
	mux.HandleFunc("POST /api/auth/logout", ah.Logout)
	mux.Handle("GET /api/auth/me", protected(ah.Me))

	bh := handlers.NewBranchHandler(db)
	mux.Handle("GET /api/branches", protected(bh.List))
	mux.Handle("POST /api/branches", protected(bh.Create))
	mux.Handle("PUT /api/branches/{id}", protected(bh.Update))
	mux.Handle("POST /api/branches/{id}/toggle", protected(bh.ToggleActive))

	ch := handlers.NewCustomerHandler(db)
	mux.Handle("GET /api/customers", protected(ch.List))
	mux.Handle("POST /api/customers", protected(ch.Create))
	mux.Handle("PUT /api/customers/{id}", protected(ch.Update))
	mux.Handle("POST /api/customers/{id}/toggle", protected(ch.ToggleActive))

	ph := handlers.NewProductHandler(db)
	mux.Handle("GET /api/products", protected(ph.List))
	mux.Handle("POST /api/products", protected(ph.Create))
	mux.Handle("PUT /api/products/{id}", protected(ph.Update))
	mux.Handle("DELETE /api/products/{id}", protected(ph.Delete))

	th := handlers.NewTruckHandler(db)
	mux.Handle("GET /api/trucks", protected(th.List))
	mux.Handle("POST /api/trucks", protected(th.Create))
	mux.Handle("PUT /api/trucks/{id}", protected(th.Update))

	dh := handlers.NewDriverHandler(db)
	mux.Handle("GET /api/drivers", protected(dh.List))
	mux.Handle("POST /api/drivers", protected(dh.Create))
	mux.Handle("PUT /api/drivers/{id}", protected(dh.Update))

	uh := handlers.NewUserHandler(db)
	mux.Handle("GET /api/users", protected(uh.List))
	mux.Handle("POST /api/users", protected(uh.Create))
	mux.Handle("PUT /api/users/{id}", protected(uh.Update))
	mux.Handle("POST /api/users/{id}/toggle", protected(uh.ToggleActive))
	mux.Handle("GET /api/roles", protected(uh.Roles))

	prh := handlers.NewProfileHandler(db)
	mux.Handle("GET /api/profile/status", protected(prh.Status))
	mux.Handle("PUT /api/profile/basic", protected(prh.SaveBasic))
	mux.Handle("PUT /api/profile/role", protected(prh.SaveRole))
	mux.Handle("POST /api/profile/password", protected(prh.ChangePassword))

	ash := handlers.NewAssignmentHandler(db)
	mux.Handle("GET /api/assignments", protected(ash.List))
	mux.Handle("POST /api/assignments", protected(ash.Create))
	mux.Handle("DELETE /api/assignments/{id}", protected(ash.Delete))

	oh := handlers.NewOrderHandler(db)
	mux.Handle("GET /api/orders", protected(oh.List))
	mux.Handle("POST /api/orders", protected(oh.Create))
	mux.Handle("GET /api/orders/{id}", protected(oh.Get))

	trh := handlers.NewTripHandler(db)
	mux.Handle("GET /api/trips", protected(trh.List))
	mux.Handle("POST /api/trips", protected(trh.Create))
	mux.Handle("POST /api/trips/{id}/complete", protected(trh.Complete))

	doch := handlers.NewDocumentHandler(db, cfg.DocumentRoot)
	mux.Handle("GET /api/orders/{id}/documents/delivery-proof", protected(doch.DeliveryProofs))
	mux.Handle("POST /api/orders/{id}/documents", protected(doch.Upload))
	mux.Handle("GET /api/documents/{id}/download", protected(doch.Download))

	sh := handlers.NewStatsHandler(db)
	mux.Handle("GET /api/stats", protected(sh.Overview))

	return middleware.CORS(cfg.CORSOrigin)(withRecover(middleware.RequestLog(mux)))
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	"github.com/novaxiii/agency-backend/internal/auth"
	"github.com/novaxiii/agency-backend/internal/handler"
	"github.com/novaxiii/agency-backend/internal/logger"
	"github.com/novaxiii/agency-backend/internal/middleware"
	"github.com/novaxiii/agency-backend/internal/utils"
)

// SetupRouter câble toutes les routes sur h. Les origines vides autorisent tout.
func SetupRouter(h *handler.Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	api.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/applications", h.SubmitApplication).Methods(http.MethodPost)
	api.HandleFunc("/applications/resume", h.UploadResume).Methods(http.MethodPost)

	authenticated := api.NewRoute().Subrouter()
	authenticated.Use(middleware.Authenticate(h.Tokens))

	// Users
	authenticated.HandleFunc("/users/profile", h.GetProfile).Methods(http.MethodGet)
	authenticated.HandleFunc("/users/profile", h.UpdateProfile).Methods(http.MethodPut)
	authenticated.HandleFunc("/users/profile/image", h.UploadProfileImage).Methods(http.MethodPost)

	// Performance
	authenticated.HandleFunc("/performance", h.CreatePerformance).Methods(http.MethodPost)
	authenticated.HandleFunc("/performance", h.GetPerformances).Methods(http.MethodGet)

	// Leaderboard
	authenticated.HandleFunc("/leaderboard", h.GetLeaderboard).Methods(http.MethodGet)

	// Analytics
	analytics := authenticated.PathPrefix("/analytics").Subrouter()
	analytics.Use(middleware.RequireCapability(auth.ViewAnalytics))
	analytics.HandleFunc("/conversion", h.GetConversionRates).Methods(http.MethodGet)
	analytics.HandleFunc("/referrals", h.GetReferralEfficiency).Methods(http.MethodGet)
	analytics.HandleFunc("/monthly-alp", h.GetMonthlyALP).Methods(http.MethodGet)

	// Admin
	authenticated.Handle("/admin/applications",
		gate(auth.ReviewApplications, h.ListApplications)).Methods(http.MethodGet)
	authenticated.Handle("/admin/applications/{id}",
		gate(auth.ReviewApplications, h.UpdateApplicationStatus)).Methods(http.MethodPut)
	authenticated.Handle("/admin/users",
		gate(auth.ListUsers, h.ListUsers)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		utils.Error(w, r, apperrors.NotFound("Route not found"))
	})

	return withCORS(handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)(r), allowedOrigins)
}

func gate(c auth.Capability, fn http.HandlerFunc) http.Handler {
	return middleware.RequireCapability(c)(fn)
}

func withCORS(next http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(next)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logger.Error("panic recovered: %v", v)
}

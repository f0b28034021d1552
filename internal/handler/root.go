package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	"github.com/novaxiii/agency-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "NOVAXIII Agency API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/api/register", "description": "Create an agent account"},
				{"method": "POST", "path": "/api/login", "description": "Log in, returns a bearer token"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/api/users/profile", "description": "Caller's profile"},
				{"method": "PUT", "path": "/api/users/profile", "description": "Update caller's profile"},
				{"method": "POST", "path": "/api/users/profile/image", "description": "Upload a profile image (multipart field: image)"},
			},
			"performance": []map[string]string{
				{"method": "POST", "path": "/api/performance", "description": "Record one day's metrics"},
				{"method": "GET", "path": "/api/performance", "description": "Caller's records (params: startDate, endDate)"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/api/leaderboard", "description": "Ranking by net ALP, current week by default (params: startDate, endDate)"},
			},
			"analytics": []map[string]string{
				{"method": "GET", "path": "/api/analytics/conversion", "description": "Conversion funnel per agent (admin, manager)"},
				{"method": "GET", "path": "/api/analytics/referrals", "description": "Referral efficiency per agent (admin, manager)"},
				{"method": "GET", "path": "/api/analytics/monthly-alp", "description": "Monthly ALP per agent (admin, manager)"},
			},
			"applications": []map[string]string{
				{"method": "POST", "path": "/api/applications", "description": "Submit a job application"},
				{"method": "POST", "path": "/api/applications/resume", "description": "Upload a resume (multipart field: resume)"},
			},
			"admin": []map[string]string{
				{"method": "GET", "path": "/api/admin/applications", "description": "List applications"},
				{"method": "PUT", "path": "/api/admin/applications/{id}", "description": "Update an application's status"},
				{"method": "GET", "path": "/api/admin/users", "description": "List accounts"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/api/health", "description": "Health check"},
			},
		},
	}

	utils.Success(w, routes)
}

// HealthCheck vérifie que le store répond.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		utils.Error(w, r, apperrors.Internal("store ping", err))
		return
	}
	utils.Success(w, map[string]string{"status": "ok"})
}

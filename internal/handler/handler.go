package handler

import (
	"time"

	"github.com/novaxiii/agency-backend/internal/auth"
	"github.com/novaxiii/agency-backend/internal/leaderboard"
	"github.com/novaxiii/agency-backend/internal/repository"
	"github.com/novaxiii/agency-backend/internal/services"
)

// Handler porte les dépendances de toutes les routes HTTP.
type Handler struct {
	Store        repository.Store
	Tokens       *auth.Tokens
	Passwords    auth.Passwords
	Leaderboard  *leaderboard.Service
	Applications *services.ApplicationService

	// Uploader is nil when Cloudinary is not configured.
	Uploader services.Uploader

	// Location is the zone record dates are interpreted in.
	Location *time.Location
}

func (h *Handler) location() *time.Location {
	if h.Location != nil {
		return h.Location
	}
	return time.Local
}

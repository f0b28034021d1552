package handler

import (
	"net/http"

	"github.com/novaxiii/agency-backend/internal/utils"
)

// GetLeaderboard renvoie le classement par ALP net sur la fenêtre demandée,
// la semaine en cours par défaut.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.Leaderboard.Leaderboard(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, entries)
}

func (h *Handler) GetConversionRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rates, err := h.Leaderboard.ConversionRates(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, rates)
}

func (h *Handler) GetReferralEfficiency(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.Leaderboard.ReferralEfficiency(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, out)
}

func (h *Handler) GetMonthlyALP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.Leaderboard.MonthlyALP(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, out)
}

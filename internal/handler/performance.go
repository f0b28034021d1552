package handler

import (
	"net/http"
	"time"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	"github.com/novaxiii/agency-backend/internal/leaderboard"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/utils"
)

type PerformanceRequest struct {
	Date            string  `json:"date" validate:"required"`
	Calls           int     `json:"calls" validate:"min=0"`
	Appointments    int     `json:"appointments" validate:"min=0"`
	Sits            int     `json:"sits" validate:"min=0"`
	Sales           int     `json:"sales" validate:"min=0"`
	ALP             float64 `json:"alp" validate:"min=0"`
	Refs            int     `json:"refs" validate:"min=0"`
	RefAppointments int     `json:"refAppointments" validate:"min=0"`
	RefSales        int     `json:"refSales" validate:"min=0"`
	RefALP          float64 `json:"refAlp" validate:"min=0"`
	Notes           string  `json:"notes"`
}

func (req PerformanceRequest) metrics() model.Metrics {
	return model.Metrics{
		Calls:           req.Calls,
		Appointments:    req.Appointments,
		Sits:            req.Sits,
		Sales:           req.Sales,
		ALP:             req.ALP,
		Refs:            req.Refs,
		RefAppointments: req.RefAppointments,
		RefSales:        req.RefSales,
		RefALP:          req.RefALP,
	}
}

// CreatePerformance enregistre les chiffres d'une journée pour l'appelant.
func (h *Handler) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	var req PerformanceRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, r, err)
		return
	}

	date, err := leaderboard.ParseDay(req.Date, h.location())
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	m := req.metrics()
	if field := m.Negative(); field != "" {
		utils.Error(w, r, apperrors.Validation(field+" must not be negative"))
		return
	}

	rec, err := h.Store.Performance.Insert(r.Context(), &model.PerformanceRecord{
		UserID:    id.ID,
		Date:      date,
		Metrics:   m,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	})
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Created(w, rec)
}

// GetPerformances liste les enregistrements de l'appelant, les plus récents
// d'abord, filtrés seulement si les deux bornes sont fournies.
func (h *Handler) GetPerformances(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	var window *model.Window
	q := r.URL.Query()
	if start, end := q.Get("startDate"), q.Get("endDate"); start != "" && end != "" {
		wnd, err := h.Leaderboard.Window(start, end)
		if err != nil {
			utils.Error(w, r, err)
			return
		}
		window = &wnd
	}

	records, err := h.Store.Performance.QueryByUser(r.Context(), id.ID, window)
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, records)
}

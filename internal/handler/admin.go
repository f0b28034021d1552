package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/utils"
)

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed contacted interviewed hired rejected"`
}

// ListApplications renvoie toutes les candidatures, les plus récentes d'abord.
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Applications.List(r.Context())
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, apps)
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, r, err)
		return
	}

	app, err := h.Applications.UpdateStatus(r.Context(), mux.Vars(r)["id"], model.ApplicationStatus(req.Status))
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, app)
}

// ListUsers renvoie tous les comptes sans leur mot de passe.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.Accounts.ListAll(r.Context())
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, users)
}

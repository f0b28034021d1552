package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/utils"
)

type RegisterRequest struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	AgencyName string `json:"agencyName" validate:"required"`
	AgentType  string `json:"agentType" validate:"required,oneof=SA GA"`
	Phone      string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  model.AuthUser `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register crée un compte agent et renvoie un token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, r, err)
		return
	}

	hash, err := h.Passwords.Hash(req.Password)
	if err != nil {
		utils.Error(w, r, err)
		return
	}

	user, err := h.Store.Accounts.Create(r.Context(), &model.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         model.RoleAgent,
		AgencyName:   strings.TrimSpace(req.AgencyName),
		AgentType:    model.AgentType(req.AgentType),
		Phone:        strings.TrimSpace(req.Phone),
		Active:       true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		utils.Error(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(*user)
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Created(w, AuthResponse{Token: token, User: user.AuthView()})
}

// Login vérifie les identifiants. Email inconnu et mauvais mot de passe
// donnent la même réponse.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, r, err)
		return
	}

	user, err := h.Store.Accounts.FindByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			err = apperrors.Unauthorized("Invalid credentials")
		}
		utils.Error(w, r, err)
		return
	}
	if err := h.Passwords.Compare(user.PasswordHash, req.Password); err != nil {
		utils.Error(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(*user)
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, AuthResponse{Token: token, User: user.AuthView()})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	"github.com/novaxiii/agency-backend/internal/middleware"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/utils"
)

const maxUploadBytes = 10 << 20

type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName" validate:"omitempty,min=1"`
	LastName     *string `json:"lastName" validate:"omitempty,min=1"`
	Phone        *string `json:"phone"`
	AgencyName   *string `json:"agencyName" validate:"omitempty,min=1"`
	AgentType    *string `json:"agentType" validate:"omitempty,oneof=SA GA"`
	ProfileImage *string `json:"profileImage"`
}

func (req UpdateProfileRequest) fields() model.ProfileUpdate {
	u := model.ProfileUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		AgencyName:   req.AgencyName,
		ProfileImage: req.ProfileImage,
	}
	if req.AgentType != nil {
		t := model.AgentType(*req.AgentType)
		u.AgentType = &t
	}
	return u
}

// caller returns the authenticated identity or writes a 401.
func caller(w http.ResponseWriter, r *http.Request) (*middleware.Identity, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.Error(w, r, apperrors.Unauthorized("Missing token"))
	}
	return id, ok
}

// GetProfile renvoie le profil de l'utilisateur connecté.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	user, err := h.Store.Accounts.FindByID(r.Context(), id.ID)
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, user)
}

// UpdateProfile applique une mise à jour partielle du profil.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, r, err)
		return
	}

	user, err := h.Store.Accounts.UpdateProfile(r.Context(), id.ID, req.fields())
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, user)
}

// UploadProfileImage envoie la photo vers Cloudinary puis met à jour le profil.
func (h *Handler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	if h.Uploader == nil {
		utils.Error(w, r, apperrors.Internal("upload profile image", errUploadDisabled))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.Error(w, r, apperrors.Validation("Invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		utils.Error(w, r, apperrors.Validation("No file uploaded"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		utils.Error(w, r, apperrors.Validation("Only image files are allowed"))
		return
	}

	url, err := h.Uploader.UploadProfileImage(r.Context(), file, id.ID)
	if err != nil {
		utils.Error(w, r, apperrors.Internal("upload profile image", err))
		return
	}

	user, err := h.Store.Accounts.UpdateProfile(r.Context(), id.ID, model.ProfileUpdate{ProfileImage: &url})
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Success(w, user)
}

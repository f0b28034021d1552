package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	model "github.com/novaxiii/agency-backend/internal/models"
	"github.com/novaxiii/agency-backend/internal/utils"
)

var errUploadDisabled = errors.New("cloudinary is not configured")

type ApplicationRequest struct {
	FirstName  string   `json:"firstName" validate:"required"`
	LastName   string   `json:"lastName" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Phone      string   `json:"phone" validate:"required"`
	Location   string   `json:"location" validate:"required"`
	Experience string   `json:"experience" validate:"required"`
	Licenses   []string `json:"licenses"`
	Message    string   `json:"message"`
	ResumeURL  string   `json:"resumeUrl" validate:"omitempty,url"`
}

type resumeResponse struct {
	URL string `json:"url"`
}

var resumeTypes = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// SubmitApplication enregistre une candidature et notifie l'admin en arrière-plan.
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req ApplicationRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, r, err)
		return
	}

	licenses := make([]string, 0, len(req.Licenses))
	for _, l := range req.Licenses {
		if l = strings.TrimSpace(l); l != "" {
			licenses = append(licenses, l)
		}
	}

	_, err := h.Applications.Submit(r.Context(), model.Application{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Location:   strings.TrimSpace(req.Location),
		Experience: strings.TrimSpace(req.Experience),
		Licenses:   licenses,
		Message:    req.Message,
		ResumeURL:  req.ResumeURL,
	})
	if err != nil {
		utils.Error(w, r, err)
		return
	}
	utils.Message(w, http.StatusCreated, "Application submitted successfully")
}

// UploadResume stocke un CV et renvoie son URL à joindre à la candidature.
func (h *Handler) UploadResume(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		utils.Error(w, r, apperrors.Internal("upload resume", errUploadDisabled))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.Error(w, r, apperrors.Validation("Invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		utils.Error(w, r, apperrors.Validation("No file uploaded"))
		return
	}
	defer file.Close()

	name := strings.ToLower(header.Filename)
	dot := strings.LastIndex(name, ".")
	if dot < 0 || !resumeTypes[name[dot:]] {
		utils.Error(w, r, apperrors.Validation("Only PDF and Word documents are allowed"))
		return
	}

	url, err := h.Uploader.UploadResume(r.Context(), file, header.Filename)
	if err != nil {
		utils.Error(w, r, apperrors.Internal("upload resume", err))
		return
	}
	utils.Created(w, resumeResponse{URL: url})
}

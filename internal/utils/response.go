package utils

import (
	"encoding/json"
	"net/http"

	"github.com/novaxiii/agency-backend/internal/apperrors"
	"github.com/novaxiii/agency-backend/internal/logger"
)

// ErrorResponse est le corps de toutes les réponses d'erreur.
type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("encode response: %v", err)
	}
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorResponse{Message: msg})
}

// Error maps err to its status code. Internal details are logged, never sent.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	status := kind.HTTPStatus()
	if kind == apperrors.KindInternal {
		logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		logger.Warning("%s %s: %v", r.Method, r.URL.Path, err)
	}
	JSON(w, status, ErrorResponse{Message: apperrors.PublicMessage(err)})
}

package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/novaxiii/agency-backend/internal/config"
)

// Uploader stores user-supplied files and returns their public URL.
type Uploader interface {
	UploadProfileImage(ctx context.Context, file io.Reader, userID string) (string, error)
	UploadResume(ctx context.Context, file io.Reader, filename string) (string, error)
}

// CloudinaryService handles all Cloudinary operations
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService creates a new Cloudinary service instance
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if !cfg.CloudinaryEnabled() {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// UploadProfileImage remplace la photo de profil de l'agent.
func (s *CloudinaryService) UploadProfileImage(ctx context.Context, file io.Reader, userID string) (string, error) {
	overwrite := true

	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       fmt.Sprintf("profiles/%s", userID),
		Folder:         "novaxiii/profiles",
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Format:         "jpg",
		Transformation: "c_fill,g_face,h_400,w_400",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

// UploadResume stores an applicant's resume as a raw asset.
func (s *CloudinaryService) UploadResume(ctx context.Context, file io.Reader, filename string) (string, error) {
	// les fichiers raw gardent leur extension dans le public ID
	publicID := uuid.NewString() + strings.ToLower(path.Ext(filename))

	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       "novaxiii/resumes",
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload resume: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

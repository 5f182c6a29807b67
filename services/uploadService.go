package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"go-restaurant-pos/config"
)

// UploadService pushes product images to Cloudinary and hands back the
// hosted URL.
type UploadService struct {
	cld *cloudinary.Cloudinary
}

func NewUploadService(cfg *config.Config) (*UploadService, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &UploadService{cld: cld}, nil
}

// UploadImage uploads the file and returns its secure URL.
func (s *UploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	result, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder: "products",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return result.SecureURL, nil
}

package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxPhotoSize bounds reading photo uploads
const MaxPhotoSize = 5 << 20

// PhotoUploader stores the photo of a monitor display next to a reading
type PhotoUploader interface {
	UploadReadingPhoto(ctx context.Context, file io.ReadSeeker, filename string, readingID uint) (string, error)
}

type ImageService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewImageService creates the Cloudinary client from a cloudinary:// URL
func NewImageService(cloudinaryURL, folder string) (*ImageService, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("missing Cloudinary configuration")
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &ImageService{cld: cld, folder: folder}, nil
}

// UploadReadingPhoto uploads the photo of a reading and returns its URL
func (s *ImageService) UploadReadingPhoto(ctx context.Context, file io.ReadSeeker, filename string, readingID uint) (string, error) {
	if err := ValidateImageFile(file, filename, MaxPhotoSize); err != nil {
		return "", err
	}

	uploadParams := uploader.UploadParams{
		PublicID:       fmt.Sprintf("reading_%d", readingID),
		Folder:         s.folder,
		Overwrite:      &[]bool{true}[0],
		ResourceType:   "image",
		Transformation: "c_limit,h_1600,w_1600/q_auto,f_auto",
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return result.SecureURL, nil
}

var allowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// ValidateImageFile checks the extension and size of an upload and rewinds it
func ValidateImageFile(file io.ReadSeeker, filename string, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageTypes[ext] {
		return fmt.Errorf("invalid file type: %q. Allowed types: jpg, jpeg, png, webp, heic", ext)
	}

	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if size > maxSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", size, maxSize)
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}

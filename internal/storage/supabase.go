package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

const maxImageSize = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var (
	// ErrFileTooLarge is returned when the upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large, max 5MB")
	// ErrUnsupportedType is returned for content types outside the allow list.
	ErrUnsupportedType = errors.New("unsupported content type")
)

// ImageStore uploads course gallery images to Supabase Storage and hands
// back public URLs. The catalog only ever stores the URL string; file
// bytes never reach the database.
type ImageStore struct {
	baseURL string
	bucket  string
	client  *storage.Client
}

// NewImageStore creates an image store for the given Supabase project.
func NewImageStore(supabaseURL, supabaseKey, bucket string) *ImageStore {
	return &ImageStore{
		baseURL: strings.TrimRight(supabaseURL, "/"),
		bucket:  bucket,
		client:  storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil),
	}
}

// UploadCourseImage validates and uploads one gallery image. The object
// path is namespaced by the uploading admin so concurrent uploads never
// collide.
func (s *ImageStore) UploadCourseImage(fileHeader *multipart.FileHeader, uploaderID uuid.UUID) (publicURL string, objectPath string, err error) {
	if fileHeader.Size > maxImageSize {
		return "", "", ErrFileTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", "", ErrUnsupportedType
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", "", fmt.Errorf("read upload: %w", err)
	}

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	objectPath = fmt.Sprintf("%s/%s%s", uploaderID, uuid.New(), ext)

	options := storage.FileOptions{
		ContentType: &contentType,
	}
	if _, err := s.client.UploadFile(s.bucket, objectPath, &buf, options); err != nil {
		return "", "", fmt.Errorf("upload to storage: %w", err)
	}

	publicURL = fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, objectPath)
	return publicURL, objectPath, nil
}

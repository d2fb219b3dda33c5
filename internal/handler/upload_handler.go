package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"edustore/internal/auth"
	"edustore/internal/errors"
	"edustore/internal/storage"
)

// UploadHandler handles course image uploads to object storage.
type UploadHandler struct {
	images *storage.ImageStore
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(images *storage.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

// UploadResponse represents a successful image upload.
type UploadResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// CourseImage godoc
// @Summary Upload a course gallery image
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file (jpeg, png, webp, or gif, max 5MB)"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/uploads/course-image [post]
func (h *UploadHandler) CourseImage(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "no file provided",
			Code:  "FILE_REQUIRED",
		})
	}

	url, path, err := h.images.UploadCourseImage(fileHeader, claims.UserID)
	if err != nil {
		if err == storage.ErrFileTooLarge {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "FILE_TOO_LARGE",
			})
		}
		if err == storage.ErrUnsupportedType {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "UNSUPPORTED_TYPE",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to upload image",
			Code:  "UPLOAD_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, UploadResponse{URL: url, Path: path})
}

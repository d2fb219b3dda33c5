package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"edustore/internal/auth"
	"edustore/internal/errors"
	"edustore/internal/service"
)

// CourseHandler handles catalog endpoints.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CourseRequest represents a course create or update request.
type CourseRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	YoutubeURL   string   `json:"youtube_url" validate:"required,url"`
	ThumbnailURL string   `json:"thumbnail_url" validate:"omitempty,url"`
	Price        string   `json:"price" validate:"omitempty"`
	Images       []string `json:"images" validate:"dive,url"`
}

func (r *CourseRequest) toInput() (service.CourseInput, error) {
	price := decimal.Zero
	if r.Price != "" {
		var err error
		price, err = decimal.NewFromString(r.Price)
		if err != nil {
			return service.CourseInput{}, err
		}
	}
	return service.CourseInput{
		Title:        r.Title,
		Description:  r.Description,
		YoutubeURL:   r.YoutubeURL,
		ThumbnailURL: r.ThumbnailURL,
		Price:        price,
		Images:       r.Images,
	}, nil
}

// List godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courseService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"courses": courses,
	})
}

// Get godoc
// @Summary Get a course with gallery, reviews, and uploader
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid course id",
			Code:  "INVALID_UUID",
		})
	}

	course, err := h.courseService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"course": course,
	})
}

// Create godoc
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CourseRequest true "Course data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price",
			Code:  "INVALID_PRICE",
		})
	}

	course, err := h.courseService.Create(c.Request().Context(), claims.UserID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"course": course,
	})
}

// Update godoc
// @Summary Update a course and replace its gallery
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body CourseRequest true "Course data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid course id",
			Code:  "INVALID_UUID",
		})
	}

	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price",
			Code:  "INVALID_PRICE",
		})
	}

	course, err := h.courseService.Update(c.Request().Context(), id, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"course": course,
	})
}

// Delete godoc
// @Summary Delete a course
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid course id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.courseService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "course deleted",
	})
}

// ListMine godoc
// @Summary List courses the caller has access to
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /my-courses [get]
func (h *CourseHandler) ListMine(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	courses, err := h.courseService.ListGranted(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"courses": courses,
	})
}

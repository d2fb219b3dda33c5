package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"edustore/internal/auth"
	"edustore/internal/errors"
	"edustore/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// AddReviewRequest represents a review submission.
type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Add godoc
// @Summary Review a course the caller has access to
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body AddReviewRequest true "Review data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses/{id}/reviews [post]
func (h *ReviewHandler) Add(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid course id",
			Code:  "INVALID_UUID",
		})
	}

	var req AddReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Add(c.Request().Context(), claims.UserID, courseID, req.Rating, req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"review": review,
	})
}

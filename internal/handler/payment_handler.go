package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"edustore/internal/auth"
	"edustore/internal/errors"
	"edustore/internal/service"
)

// PaymentHandler handles payment ledger and verification endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// SubmitPaymentRequest represents a bank-transfer payment claim.
type SubmitPaymentRequest struct {
	CourseID      string `json:"course_id" validate:"required,uuid"`
	TransactionID string `json:"transaction_id" validate:"required"`
}

// PaymentDecisionResponse represents the outcome of a verify or reject.
type PaymentDecisionResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// Submit godoc
// @Summary Submit a bank-transfer payment claim for a course
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitPaymentRequest true "Payment claim"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) Submit(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	var req SubmitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid course_id",
			Code:  "INVALID_UUID",
		})
	}

	payment, err := h.paymentService.Submit(c.Request().Context(), claims.UserID, courseID, req.TransactionID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"payment": payment,
	})
}

// ListPending godoc
// @Summary List pending payments awaiting verification
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/payments/pending [get]
func (h *PaymentHandler) ListPending(c echo.Context) error {
	payments, err := h.paymentService.ListPending(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
	})
}

// ListMine godoc
// @Summary List the caller's payment history
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /payments/my [get]
func (h *PaymentHandler) ListMine(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	payments, err := h.paymentService.ListMine(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
	})
}

// Verify godoc
// @Summary Verify a pending payment and grant course access
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} PaymentDecisionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/payments/{id}/verify [post]
func (h *PaymentHandler) Verify(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid payment id",
			Code:  "INVALID_UUID",
		})
	}

	payment, err := h.paymentService.Verify(c.Request().Context(), paymentID, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PaymentDecisionResponse{
		PaymentID: payment.ID.String(),
		Status:    string(payment.Status),
		Message:   "payment verified and access granted",
	})
}

// Reject godoc
// @Summary Reject a pending payment
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} PaymentDecisionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/payments/{id}/reject [post]
func (h *PaymentHandler) Reject(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid payment id",
			Code:  "INVALID_UUID",
		})
	}

	payment, err := h.paymentService.Reject(c.Request().Context(), paymentID, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, PaymentDecisionResponse{
		PaymentID: payment.ID.String(),
		Status:    string(payment.Status),
		Message:   "payment rejected",
	})
}

// CheckAccess godoc
// @Summary Check whether the caller may watch a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses/{id}/access [get]
func (h *PaymentHandler) CheckAccess(c echo.Context) error {
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

	hasAccess, err := h.paymentService.HasAccess(c.Request().Context(), claims.UserID, courseID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"has_access": hasAccess,
	})
}

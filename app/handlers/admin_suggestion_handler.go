package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/golfveneto/suggestion-box/app/dto"
	businessflow "github.com/golfveneto/suggestion-box/business_flow"
)

// AdminSuggestionHandlerInterface defines the contract for the review panel handlers
type AdminSuggestionHandlerInterface interface {
	List(c fiber.Ctx) error
	UpdateStatus(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

// AdminSuggestionHandler handles the admin review endpoints
type AdminSuggestionHandler struct {
	flow      businessflow.AdminSuggestionFlow
	validator *validator.Validate
}

// NewAdminSuggestionHandler creates a new admin suggestion handler
func NewAdminSuggestionHandler(flow businessflow.AdminSuggestionFlow) *AdminSuggestionHandler {
	return &AdminSuggestionHandler{
		flow:      flow,
		validator: newValidator(),
	}
}

func (h *AdminSuggestionHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AdminSuggestionHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// listRequestFromQuery reads the listing filters off the query string.
// Unknown club or status values are dropped rather than rejected so stale
// panel links keep working.
func listRequestFromQuery(c fiber.Ctx) *dto.ListSuggestionsRequest {
	req := &dto.ListSuggestionsRequest{Page: 1}
	if v := c.Query("club"); v != "" {
		req.Club = &v
	}
	if v := c.Query("status"); v != "" {
		req.Status = &v
	}
	if v := c.Query("search"); v != "" {
		req.Search = &v
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			req.Page = n
		}
	}
	return req
}

// List Suggestions
// @Description List suggestions for review, newest first, twenty per page.
// @Tags Admin
// @Accept json
// @Produce json
// @Param club query string false "Filter by club"
// @Param status query string false "Filter by review status"
// @Param search query string false "Substring match on the message text"
// @Param page query integer false "Page number (default: 1)"
// @Success 200 {object} dto.APIResponse{data=dto.ListSuggestionsResponse} "Suggestions retrieved successfully"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/suggestions [get]
func (h *AdminSuggestionHandler) List(c fiber.Ctx) error {
	req := listRequestFromQuery(c)

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := h.flow.ListSuggestions(ctx, req, metadata)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list suggestions", "LIST_SUGGESTIONS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Suggestions retrieved successfully", result)
}

// UpdateStatus Suggestion Status
// @Description Move a suggestion through the review states (new, reviewed, archived).
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path integer true "Suggestion ID"
// @Param request body dto.UpdateSuggestionStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SuggestionItem} "Status updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Suggestion not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/suggestions/{id}/status [patch]
func (h *AdminSuggestionHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid suggestion ID", "INVALID_SUGGESTION_ID", nil)
	}

	var req dto.UpdateSuggestionStatusRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ID = uint(id)

	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(fieldErr))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := h.flow.UpdateSuggestionStatus(ctx, &req, metadata)
	if err != nil {
		if businessflow.IsSuggestionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Suggestion not found", "SUGGESTION_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidStatus(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid status", "INVALID_STATUS", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update status", "UPDATE_STATUS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Status updated successfully", result)
}

// Export Suggestions
// @Description Download the filtered suggestions as an Excel workbook.
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param club query string false "Filter by club"
// @Param status query string false "Filter by review status"
// @Param search query string false "Substring match on the message text"
// @Success 200 {file} binary "Excel workbook"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/suggestions/export [get]
func (h *AdminSuggestionHandler) Export(c fiber.Ctx) error {
	req := listRequestFromQuery(c)

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := h.flow.ExportSuggestions(ctx, req, metadata)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export suggestions", "EXPORT_SUGGESTIONS_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	return c.Status(fiber.StatusOK).Send(result.Content)
}

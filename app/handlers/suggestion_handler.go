package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/golfveneto/suggestion-box/app/dto"
	"github.com/golfveneto/suggestion-box/app/middleware"
	"github.com/golfveneto/suggestion-box/app/services"
	businessflow "github.com/golfveneto/suggestion-box/business_flow"
)

// SuggestionHandlerInterface defines the contract for the public intake handler
type SuggestionHandlerInterface interface {
	Submit(c fiber.Ctx) error
}

// SuggestionHandler handles public suggestion submissions
type SuggestionHandler struct {
	flow      businessflow.SuggestionFlow
	validator *validator.Validate
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(flow businessflow.SuggestionFlow) *SuggestionHandler {
	return &SuggestionHandler{
		flow:      flow,
		validator: newValidator(),
	}
}

// Submit Suggestion
// @Description Submit a suggestion for one of the clubs. Accepts an optional display name unless the submission is anonymous.
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param request body dto.SubmitSuggestionRequest true "Suggestion payload"
// @Success 200 {object} dto.SubmitAcceptedResponse "Suggestion accepted"
// @Failure 400 {object} dto.SubmitRejectedResponse "Validation error or invalid request"
// @Failure 500 {object} dto.SubmitRejectedResponse "Internal server error"
// @Router /api/v1/suggestions [post]
func (h *SuggestionHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitSuggestionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SubmitRejectedResponse{
			OK:    false,
			Error: "Invalid input",
		})
	}

	// Length bounds apply to the trimmed message; trim once here so the
	// stored text matches what was validated.
	req.Message = strings.TrimSpace(req.Message)

	if err := h.validator.Struct(&req); err != nil {
		var details []dto.FieldErrorDetail
		for _, fieldErr := range err.(validator.ValidationErrors) {
			details = append(details, dto.FieldErrorDetail{
				Path:    []string{fieldErr.Field()},
				Message: getValidationErrorMessage(fieldErr),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.SubmitRejectedResponse{
			OK:      false,
			Error:   "Invalid input",
			Details: details,
		})
	}

	address := services.ResolveClientAddress(c.Get("X-Forwarded-For"), c.Get("X-Real-IP"))
	metadata := businessflow.NewClientMetadata(address, c.Get("User-Agent"))
	metadata.SetRequestID(c.Get("X-Request-ID"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := h.flow.SubmitSuggestion(ctx, &req, metadata)
	if err != nil {
		if businessflow.IsHasherNotConfigured(err) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.SubmitRejectedResponse{
				OK:    false,
				Error: "Server configuration error",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SubmitRejectedResponse{
			OK:    false,
			Error: "Failed to store suggestion",
		})
	}

	if result.Stored {
		middleware.SuggestionsStored.WithLabelValues(req.Club).Inc()
	} else {
		middleware.SuggestionsDiscarded.Inc()
	}

	return c.Status(fiber.StatusOK).JSON(dto.SubmitAcceptedResponse{OK: true})
}

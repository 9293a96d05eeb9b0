package businessflow

import (
	"context"
	"errors"
	"strings"

	"github.com/golfveneto/suggestion-box/app/dto"
	"github.com/golfveneto/suggestion-box/app/services"
	"github.com/golfveneto/suggestion-box/models"
	"github.com/golfveneto/suggestion-box/repository"
	"github.com/golfveneto/suggestion-box/utils"
)

// SuggestionFlow defines operations for the public suggestion intake
type SuggestionFlow interface {
	SubmitSuggestion(ctx context.Context, req *dto.SubmitSuggestionRequest, metadata *ClientMetadata) (*dto.SubmitSuggestionResult, error)
}

// SuggestionFlowImpl implements SuggestionFlow
type SuggestionFlowImpl struct {
	suggestionRepo repository.SuggestionRepository
	hasher         services.IdentityHasher
}

func NewSuggestionFlow(suggestionRepo repository.SuggestionRepository, hasher services.IdentityHasher) SuggestionFlow {
	return &SuggestionFlowImpl{suggestionRepo: suggestionRepo, hasher: hasher}
}

func (f *SuggestionFlowImpl) SubmitSuggestion(ctx context.Context, req *dto.SubmitSuggestionRequest, metadata *ClientMetadata) (*dto.SubmitSuggestionResult, error) {
	// Bots fill the hidden field. Pretend everything went fine and store nothing.
	if req.Honey != nil && *req.Honey != "" {
		return &dto.SubmitSuggestionResult{Stored: false}, nil
	}

	ipHash, err := f.hasher.HashAddress(metadata.Address)
	if err != nil {
		if errors.Is(err, services.ErrHashSaltMissing) {
			return nil, NewBusinessError("HASHER_NOT_CONFIGURED", "Server configuration error", ErrHasherNotConfigured)
		}
		return nil, NewBusinessError("HASH_ADDRESS_FAILED", "Failed to process submission", err)
	}

	isAnonymous := utils.IsTrue(req.IsAnonymous)

	var name *string
	if !isAnonymous && req.Name != nil {
		if trimmed := strings.TrimSpace(*req.Name); trimmed != "" {
			name = &trimmed
		}
	}

	var userAgent *string
	if metadata.UserAgent != "" {
		userAgent = &metadata.UserAgent
	}

	s := models.Suggestion{
		Club:        req.Club,
		IsAnonymous: isAnonymous,
		Name:        name,
		Message:     strings.TrimSpace(req.Message),
		Status:      models.StatusNew,
		UserAgent:   userAgent,
		IPSHA256:    ipHash,
	}

	if err := f.suggestionRepo.Save(ctx, &s); err != nil {
		return nil, NewBusinessError("SAVE_SUGGESTION_FAILED", "Failed to store suggestion", err)
	}

	return &dto.SubmitSuggestionResult{Stored: true, UUID: s.UUID.String()}, nil
}

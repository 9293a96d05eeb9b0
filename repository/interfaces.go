// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/golfveneto/suggestion-box/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// SuggestionRepository defines operations for suggestions
type SuggestionRepository interface {
	Repository[models.Suggestion, models.SuggestionFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Suggestion, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

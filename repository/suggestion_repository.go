package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golfveneto/suggestion-box/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuggestionRepositoryImpl implements SuggestionRepository interface
type SuggestionRepositoryImpl struct {
	*BaseRepository[models.Suggestion, models.SuggestionFilter]
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *gorm.DB) SuggestionRepository {
	return &SuggestionRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Suggestion, models.SuggestionFilter](db),
	}
}

// ByID retrieves a suggestion by its ID
func (r *SuggestionRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Suggestion, error) {
	db := r.getDB(ctx)
	var row models.Suggestion
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ByUUID retrieves a suggestion by UUID
func (r *SuggestionRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Suggestion, error) {
	parsed, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, err
	}
	rows, err := r.ByFilter(ctx, models.SuggestionFilter{UUID: &parsed}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// applyFilter applies filter criteria to a GORM query
func (r *SuggestionRepositoryImpl) applyFilter(query *gorm.DB, filter models.SuggestionFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Club != nil {
		query = query.Where("club = ?", *filter.Club)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != nil {
		if trimmed := strings.TrimSpace(*filter.Search); trimmed != "" {
			query = query.Where("message ILIKE ?", "%"+escapeLike(trimmed)+"%")
		}
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// escapeLike escapes LIKE metacharacters so search text matches literally
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// ByFilter retrieves suggestions based on filter criteria
func (r *SuggestionRepositoryImpl) ByFilter(ctx context.Context, filter models.SuggestionFilter, orderBy string, limit, offset int) ([]*models.Suggestion, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Suggestion{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Suggestion
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns number of suggestions matching filter
func (r *SuggestionRepositoryImpl) Count(ctx context.Context, filter models.SuggestionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Suggestion{})
	query = r.applyFilter(query, filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any suggestion matches the filter
func (r *SuggestionRepositoryImpl) Exists(ctx context.Context, filter models.SuggestionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// UpdateStatus sets the review status of a suggestion
func (r *SuggestionRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("invalid status %q", status)
	}
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Model(&models.Suggestion{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update suggestion status: %w", err)
	}

	return nil
}

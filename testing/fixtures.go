// Package testing provides test utilities and database setup for testing the suggestion box service
package testing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"

	"github.com/golfveneto/suggestion-box/models"
	"github.com/golfveneto/suggestion-box/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestSuggestion creates a suggestion for the given club with sensible
// defaults. Pass opts to override fields before the insert.
func (tf *TestFixtures) CreateTestSuggestion(club string, opts ...func(*models.Suggestion)) (*models.Suggestion, error) {
	addr := fmt.Sprintf("203.0.113.%d", rand.Intn(255))
	sum := sha256.Sum256([]byte(addr + "test-salt"))

	suggestion := &models.Suggestion{
		Club:        club,
		IsAnonymous: false,
		Name:        utils.ToPtr("Mario Rossi"),
		Message:     "The driving range needs more evening lighting in winter.",
		Status:      models.StatusNew,
		UserAgent:   utils.ToPtr("Mozilla/5.0 (test)"),
		IPSHA256:    hex.EncodeToString(sum[:]),
	}

	for _, opt := range opts {
		opt(suggestion)
	}

	if err := tf.DB.DB.Create(suggestion).Error; err != nil {
		return nil, fmt.Errorf("failed to create test suggestion: %w", err)
	}

	return suggestion, nil
}

// CreateTestSuggestions creates n suggestions for the given club
func (tf *TestFixtures) CreateTestSuggestions(club string, n int) ([]*models.Suggestion, error) {
	suggestions := make([]*models.Suggestion, 0, n)
	for i := 0; i < n; i++ {
		msg := fmt.Sprintf("Suggestion number %d about the clubhouse restaurant menu.", i+1)
		s, err := tf.CreateTestSuggestion(club, func(s *models.Suggestion) {
			s.Message = msg
		})
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

// Anonymous marks a fixture suggestion anonymous. The name must be cleared
// to satisfy the table constraint.
func Anonymous() func(*models.Suggestion) {
	return func(s *models.Suggestion) {
		s.IsAnonymous = true
		s.Name = nil
	}
}

// WithStatus sets the review status on a fixture suggestion
func WithStatus(status string) func(*models.Suggestion) {
	return func(s *models.Suggestion) {
		s.Status = status
	}
}

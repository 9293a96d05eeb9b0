package models

import (
	"time"

	"github.com/golfveneto/suggestion-box/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Club values a suggestion may be scoped to. The set is closed; the API and
// the database CHECK constraint both reject anything else.
const (
	ClubMontecchia  = "montecchia"
	ClubFrassanelle = "frassanelle"
	ClubGalzignano  = "galzignano"
	ClubAlbarella   = "albarella"
)

// Review states of a suggestion. New records always start as StatusNew.
const (
	StatusNew      = "new"
	StatusReviewed = "reviewed"
	StatusArchived = "archived"
)

// Clubs lists the valid club values in display order.
func Clubs() []string {
	return []string{ClubMontecchia, ClubFrassanelle, ClubGalzignano, ClubAlbarella}
}

// Statuses lists the valid review states.
func Statuses() []string {
	return []string{StatusNew, StatusReviewed, StatusArchived}
}

// IsValidClub reports whether v is one of the four known clubs.
func IsValidClub(v string) bool {
	switch v {
	case ClubMontecchia, ClubFrassanelle, ClubGalzignano, ClubAlbarella:
		return true
	}
	return false
}

// IsValidStatus reports whether v is a known review state.
func IsValidStatus(v string) bool {
	switch v {
	case StatusNew, StatusReviewed, StatusArchived:
		return true
	}
	return false
}

// Suggestion represents one submitted suggestion
// Table: suggestions
// Indices: uuid, created_at, club, status
// Name is NULL whenever IsAnonymous is true; the flow forces this at write
// time and the table carries a matching CHECK constraint
// IPSHA256 holds a salted SHA-256 digest of the submitter address, never the
// raw address
// Timestamps default to UTC at DB level
type Suggestion struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;default:gen_random_uuid()" json:"uuid"`
	Club        string    `gorm:"type:varchar(32);not null;index" json:"club"`
	IsAnonymous bool      `gorm:"not null;default:false" json:"is_anonymous"`
	Name        *string   `gorm:"type:varchar(120)" json:"name,omitempty"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Status      string    `gorm:"type:varchar(16);not null;default:'new';index" json:"status"`
	UserAgent   *string   `gorm:"type:text" json:"user_agent,omitempty"`
	IPSHA256    string    `gorm:"type:varchar(64);not null" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

func (Suggestion) TableName() string { return "suggestions" }

// BeforeCreate ensures UUID, status, and timestamps are set
func (s *Suggestion) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == uuid.Nil {
		s.UUID = uuid.New()
	}
	if s.Status == "" {
		s.Status = StatusNew
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.UTCNow()
	}
	return nil
}

// SuggestionFilter represents filter criteria for suggestion queries.
// Club and Status are exact matches; Search is a case-insensitive substring
// match against the message body. All present fields combine with AND.
type SuggestionFilter struct {
	ID            *uint      `json:"id,omitempty"`
	UUID          *uuid.UUID `json:"uuid,omitempty"`
	Club          *string    `json:"club,omitempty"`
	Status        *string    `json:"status,omitempty"`
	Search        *string    `json:"search,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}

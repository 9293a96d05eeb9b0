package dto

import "time"

// SubmitSuggestionRequest is the public intake payload.
type SubmitSuggestionRequest struct {
	Club        string  `json:"club" validate:"required,oneof=montecchia frassanelle galzignano albarella"`
	Message     string  `json:"message" validate:"required,min_runes=10,max_runes=4000"`
	IsAnonymous *bool   `json:"is_anonymous" validate:"required"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Honey       *string `json:"honey,omitempty" validate:"omitempty"`
}

// SubmitAcceptedResponse is the wire shape for an accepted submission.
type SubmitAcceptedResponse struct {
	OK bool `json:"ok"`
}

// FieldErrorDetail pins a validation message to the offending field.
type FieldErrorDetail struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// SubmitRejectedResponse is the wire shape for a rejected submission.
type SubmitRejectedResponse struct {
	OK      bool               `json:"ok"`
	Error   string             `json:"error"`
	Details []FieldErrorDetail `json:"details,omitempty"`
}

// SubmitSuggestionResult reports the outcome of a submission flow.
type SubmitSuggestionResult struct {
	Stored bool
	UUID   string
}

// ListSuggestionsRequest carries the admin listing filters.
type ListSuggestionsRequest struct {
	Club   *string `json:"club,omitempty" validate:"omitempty,oneof=montecchia frassanelle galzignano albarella"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=new reviewed archived"`
	Search *string `json:"search,omitempty" validate:"omitempty,max=200"`
	Page   int     `json:"page" validate:"omitempty,min=1"`
}

// SuggestionItem is a single row in the admin listing.
type SuggestionItem struct {
	ID          uint      `json:"id"`
	UUID        string    `json:"uuid"`
	Club        string    `json:"club"`
	IsAnonymous bool      `json:"is_anonymous"`
	Name        *string   `json:"name"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	UserAgent   *string   `json:"user_agent"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListSuggestionsResponse is the paginated admin listing payload.
type ListSuggestionsResponse struct {
	Suggestions []SuggestionItem `json:"suggestions"`
	Page        int              `json:"page"`
	TotalPages  int              `json:"total_pages"`
	TotalCount  int64            `json:"total_count"`
}

// UpdateSuggestionStatusRequest moves a suggestion through the review states.
type UpdateSuggestionStatusRequest struct {
	ID     uint   `json:"-"`
	Status string `json:"status" validate:"required,oneof=new reviewed archived"`
}

// ExportSuggestionsResult holds a rendered spreadsheet export.
type ExportSuggestionsResult struct {
	FileName string
	Content  []byte
}

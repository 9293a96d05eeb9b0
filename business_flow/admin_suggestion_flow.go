package businessflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golfveneto/suggestion-box/app/dto"
	"github.com/golfveneto/suggestion-box/models"
	"github.com/golfveneto/suggestion-box/repository"
	"github.com/xuri/excelize/v2"
)

// AdminSuggestionFlow defines operations for the admin review panel
type AdminSuggestionFlow interface {
	ListSuggestions(ctx context.Context, req *dto.ListSuggestionsRequest, metadata *ClientMetadata) (*dto.ListSuggestionsResponse, error)
	UpdateSuggestionStatus(ctx context.Context, req *dto.UpdateSuggestionStatusRequest, metadata *ClientMetadata) (*dto.SuggestionItem, error)
	ExportSuggestions(ctx context.Context, req *dto.ListSuggestionsRequest, metadata *ClientMetadata) (*dto.ExportSuggestionsResult, error)
}

// AdminSuggestionFlowImpl implements AdminSuggestionFlow
type AdminSuggestionFlowImpl struct {
	suggestionRepo repository.SuggestionRepository
}

func NewAdminSuggestionFlow(suggestionRepo repository.SuggestionRepository) AdminSuggestionFlow {
	return &AdminSuggestionFlowImpl{suggestionRepo: suggestionRepo}
}

// listPageSize is fixed. The review panel always renders twenty rows per page.
const listPageSize = 20

func buildSuggestionFilter(req *dto.ListSuggestionsRequest) models.SuggestionFilter {
	filter := models.SuggestionFilter{}
	if req.Club != nil && models.IsValidClub(*req.Club) {
		filter.Club = req.Club
	}
	if req.Status != nil && models.IsValidStatus(*req.Status) {
		filter.Status = req.Status
	}
	if req.Search != nil {
		if trim := strings.TrimSpace(*req.Search); trim != "" {
			filter.Search = &trim
		}
	}
	return filter
}

func toSuggestionItem(s *models.Suggestion) dto.SuggestionItem {
	return dto.SuggestionItem{
		ID:          s.ID,
		UUID:        s.UUID.String(),
		Club:        s.Club,
		IsAnonymous: s.IsAnonymous,
		Name:        s.Name,
		Message:     s.Message,
		Status:      s.Status,
		UserAgent:   s.UserAgent,
		CreatedAt:   s.CreatedAt,
	}
}

func (f *AdminSuggestionFlowImpl) ListSuggestions(ctx context.Context, req *dto.ListSuggestionsRequest, metadata *ClientMetadata) (*dto.ListSuggestionsResponse, error) {
	filter := buildSuggestionFilter(req)

	page := req.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * listPageSize

	count, err := f.suggestionRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("LIST_SUGGESTIONS_FAILED", "Failed to count suggestions", err)
	}

	rows, err := f.suggestionRepo.ByFilter(ctx, filter, "created_at DESC", listPageSize, offset)
	if err != nil {
		return nil, NewBusinessError("LIST_SUGGESTIONS_FAILED", "Failed to list suggestions", err)
	}

	items := make([]dto.SuggestionItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, toSuggestionItem(r))
	}

	totalPages := int((count + listPageSize - 1) / listPageSize)

	return &dto.ListSuggestionsResponse{
		Suggestions: items,
		Page:        page,
		TotalPages:  totalPages,
		TotalCount:  count,
	}, nil
}

func (f *AdminSuggestionFlowImpl) UpdateSuggestionStatus(ctx context.Context, req *dto.UpdateSuggestionStatusRequest, metadata *ClientMetadata) (*dto.SuggestionItem, error) {
	if !models.IsValidStatus(req.Status) {
		return nil, NewBusinessError("INVALID_STATUS", fmt.Sprintf("status must be one of %s", strings.Join(models.Statuses(), ", ")), ErrInvalidStatus)
	}

	s, err := f.suggestionRepo.ByID(ctx, req.ID)
	if err != nil {
		return nil, NewBusinessError("UPDATE_STATUS_FAILED", "Failed to load suggestion", err)
	}
	if s == nil {
		return nil, ErrSuggestionNotFound
	}

	if err := f.suggestionRepo.UpdateStatus(ctx, s.ID, req.Status); err != nil {
		return nil, NewBusinessError("UPDATE_STATUS_FAILED", "Failed to update suggestion status", err)
	}

	s.Status = req.Status
	item := toSuggestionItem(s)
	return &item, nil
}

func (f *AdminSuggestionFlowImpl) ExportSuggestions(ctx context.Context, req *dto.ListSuggestionsRequest, metadata *ClientMetadata) (*dto.ExportSuggestionsResult, error) {
	filter := buildSuggestionFilter(req)

	rows, err := f.suggestionRepo.ByFilter(ctx, filter, "created_at DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("EXPORT_SUGGESTIONS_FAILED", "Failed to fetch suggestions", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	// ip_sha256 is included so admins can correlate repeat submitters; it is
	// a salted digest, never the raw address.
	header := []string{"id", "uuid", "club", "anonymous", "name", "message", "status", "user_agent", "ip_sha256", "created_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, r := range rows {
		name := ""
		if r.Name != nil {
			name = *r.Name
		}
		ua := ""
		if r.UserAgent != nil {
			ua = *r.UserAgent
		}
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.UUID.String(),
			r.Club,
			strconv.FormatBool(r.IsAnonymous),
			name,
			r.Message,
			r.Status,
			ua,
			r.IPSHA256,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	filename := fmt.Sprintf("suggestions_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	return &dto.ExportSuggestionsResult{FileName: filename, Content: buf.Bytes()}, nil
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golfveneto/suggestion-box/app/dto"
	businessflow "github.com/golfveneto/suggestion-box/business_flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdminFlow returns canned responses and records the last request
type fakeAdminFlow struct {
	listResult   *dto.ListSuggestionsResponse
	updateResult *dto.SuggestionItem
	exportResult *dto.ExportSuggestionsResult
	err          error
	lastList     *dto.ListSuggestionsRequest
	lastUpdate   *dto.UpdateSuggestionStatusRequest
}

func (f *fakeAdminFlow) ListSuggestions(ctx context.Context, req *dto.ListSuggestionsRequest, metadata *businessflow.ClientMetadata) (*dto.ListSuggestionsResponse, error) {
	f.lastList = req
	if f.err != nil {
		return nil, f.err
	}
	if f.listResult != nil {
		return f.listResult, nil
	}
	return &dto.ListSuggestionsResponse{Suggestions: []dto.SuggestionItem{}, Page: req.Page}, nil
}

func (f *fakeAdminFlow) UpdateSuggestionStatus(ctx context.Context, req *dto.UpdateSuggestionStatusRequest, metadata *businessflow.ClientMetadata) (*dto.SuggestionItem, error) {
	f.lastUpdate = req
	if f.err != nil {
		return nil, f.err
	}
	if f.updateResult != nil {
		return f.updateResult, nil
	}
	return &dto.SuggestionItem{ID: req.ID, Status: req.Status}, nil
}

func (f *fakeAdminFlow) ExportSuggestions(ctx context.Context, req *dto.ListSuggestionsRequest, metadata *businessflow.ClientMetadata) (*dto.ExportSuggestionsResult, error) {
	f.lastList = req
	if f.err != nil {
		return nil, f.err
	}
	if f.exportResult != nil {
		return f.exportResult, nil
	}
	return &dto.ExportSuggestionsResult{FileName: "suggestions.xlsx", Content: []byte("stub")}, nil
}

func adminApp(flow businessflow.AdminSuggestionFlow) *fiber.App {
	app := fiber.New()
	handler := NewAdminSuggestionHandler(flow)
	app.Get("/api/v1/admin/suggestions", handler.List)
	app.Get("/api/v1/admin/suggestions/export", handler.Export)
	app.Patch("/api/v1/admin/suggestions/:id/status", handler.UpdateStatus)
	return app
}

func TestAdminSuggestionHandler_List(t *testing.T) {
	t.Run("DefaultsToPageOne", func(t *testing.T) {
		flow := &fakeAdminFlow{}
		app := adminApp(flow)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/suggestions", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, flow.lastList)
		assert.Equal(t, 1, flow.lastList.Page)
		assert.Nil(t, flow.lastList.Club)
		assert.Nil(t, flow.lastList.Status)
	})

	t.Run("ParsesFilters", func(t *testing.T) {
		flow := &fakeAdminFlow{}
		app := adminApp(flow)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/suggestions?club=albarella&status=reviewed&search=restaurant&page=3", nil)
		_, err := app.Test(req)
		require.NoError(t, err)
		require.NotNil(t, flow.lastList)
		require.NotNil(t, flow.lastList.Club)
		assert.Equal(t, "albarella", *flow.lastList.Club)
		require.NotNil(t, flow.lastList.Status)
		assert.Equal(t, "reviewed", *flow.lastList.Status)
		require.NotNil(t, flow.lastList.Search)
		assert.Equal(t, "restaurant", *flow.lastList.Search)
		assert.Equal(t, 3, flow.lastList.Page)
	})

	t.Run("UnparseablePageDefaultsToOne", func(t *testing.T) {
		flow := &fakeAdminFlow{}
		app := adminApp(flow)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/suggestions?page=banana", nil)
		_, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 1, flow.lastList.Page)
	})

	t.Run("NegativePageDefaultsToOne", func(t *testing.T) {
		flow := &fakeAdminFlow{}
		app := adminApp(flow)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/suggestions?page=-2", nil)
		_, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 1, flow.lastList.Page)
	})

	t.Run("FlowFailureIsServerError", func(t *testing.T) {
		flow := &fakeAdminFlow{err: errors.New("db gone")}
		app := adminApp(flow)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/suggestions", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("WrapsResultInEnvelope", func(t *testing.T) {
		flow := &fakeAdminFlow{listResult: &dto.ListSuggestionsResponse{
			Suggestions: []dto.SuggestionItem{{ID: 1, Club: "albarella", Message: "More lockers please", Status: "new", CreatedAt: time.Now().UTC()}},
			Page:        1,
			TotalPages:  1,
			TotalCount:  1,
		}}
		app := adminApp(flow)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/suggestions", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		var parsed map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
		assert.Equal(t, true, parsed["success"])

		data := parsed["data"].(map[string]any)
		assert.Equal(t, float64(1), data["total_count"])
		suggestions := data["suggestions"].([]any)
		require.Len(t, suggestions, 1)
		first := suggestions[0].(map[string]any)
		assert.Equal(t, "albarella", first["club"])
		assert.NotContains(t, first, "ip_sha256")
	})
}

func TestAdminSuggestionHandler_UpdateStatus(t *testing.T) {
	patchStatus := func(t *testing.T, app *fiber.App, path, body string) *http.Response {
		t.Helper()
		req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("UpdatesStatus", func(t *testing.T) {
		flow := &fakeAdminFlow{}
		app := adminApp(flow)

		resp := patchStatus(t, app, "/api/v1/admin/suggestions/42/status", `{"status":"reviewed"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, flow.lastUpdate)
		assert.Equal(t, uint(42), flow.lastUpdate.ID)
		assert.Equal(t, "reviewed", flow.lastUpdate.Status)
	})

	t.Run("RejectsBadID", func(t *testing.T) {
		flow := &fakeAdminFlow{}
		app := adminApp(flow)

		resp := patchStatus(t, app, "/api/v1/admin/suggestions/abc/status", `{"status":"reviewed"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Nil(t, flow.lastUpdate)
	})

	t.Run("RejectsUnknownStatus", func(t *testing.T) {
		flow := &fakeAdminFlow{}
		app := adminApp(flow)

		resp := patchStatus(t, app, "/api/v1/admin/suggestions/42/status", `{"status":"resolved"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Nil(t, flow.lastUpdate)
	})

	t.Run("NotFoundMapsTo404", func(t *testing.T) {
		flow := &fakeAdminFlow{err: businessflow.ErrSuggestionNotFound}
		app := adminApp(flow)

		resp := patchStatus(t, app, "/api/v1/admin/suggestions/42/status", `{"status":"archived"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminSuggestionHandler_Export(t *testing.T) {
	t.Run("SendsWorkbookAttachment", func(t *testing.T) {
		flow := &fakeAdminFlow{exportResult: &dto.ExportSuggestionsResult{
			FileName: "suggestions_2025-06-01.xlsx",
			Content:  []byte("workbook-bytes"),
		}}
		app := adminApp(flow)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/suggestions/export?club=frassanelle", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "suggestions_2025-06-01.xlsx")

		require.NotNil(t, flow.lastList)
		require.NotNil(t, flow.lastList.Club)
		assert.Equal(t, "frassanelle", *flow.lastList.Club)
	})

	t.Run("ExportFailureIsServerError", func(t *testing.T) {
		flow := &fakeAdminFlow{err: errors.New("render failed")}
		app := adminApp(flow)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/suggestions/export", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

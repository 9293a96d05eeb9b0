package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/golfveneto/suggestion-box/app/dto"
	businessflow "github.com/golfveneto/suggestion-box/business_flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSuggestionFlow records the calls it receives and returns a canned result
type fakeSuggestionFlow struct {
	result   *dto.SubmitSuggestionResult
	err      error
	lastReq  *dto.SubmitSuggestionRequest
	lastMeta *businessflow.ClientMetadata
	calls    int
}

func (f *fakeSuggestionFlow) SubmitSuggestion(ctx context.Context, req *dto.SubmitSuggestionRequest, metadata *businessflow.ClientMetadata) (*dto.SubmitSuggestionResult, error) {
	f.calls++
	f.lastReq = req
	f.lastMeta = metadata
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &dto.SubmitSuggestionResult{Stored: true}, nil
}

func submitApp(flow businessflow.SuggestionFlow) *fiber.App {
	app := fiber.New()
	handler := NewSuggestionHandler(flow)
	app.Post("/api/v1/suggestions", handler.Submit)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func validBody() string {
	return `{"club":"montecchia","message":"The range needs more evening lighting in winter.","is_anonymous":false,"name":"Mario Rossi"}`
}

func detailPaths(t *testing.T, parsed map[string]any) []string {
	t.Helper()
	details, ok := parsed["details"].([]any)
	require.True(t, ok, "expected details array, got %v", parsed)
	var paths []string
	for _, d := range details {
		entry := d.(map[string]any)
		path := entry["path"].([]any)
		require.Len(t, path, 1)
		paths = append(paths, path[0].(string))
	}
	return paths
}

func TestSuggestionHandler_Submit(t *testing.T) {
	t.Run("AcceptsValidSubmission", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		resp, parsed := postJSON(t, app, validBody(), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]any{"ok": true}, parsed)
		assert.Equal(t, 1, flow.calls)
	})

	t.Run("MalformedJSONIsGenericFailure", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		resp, parsed := postJSON(t, app, `{"club":`, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, false, parsed["ok"])
		assert.Equal(t, "Invalid input", parsed["error"])
		assert.NotContains(t, parsed, "details")
		assert.Zero(t, flow.calls)
	})

	t.Run("UnknownClubRejected", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		body := `{"club":"sanremo","message":"The range needs more evening lighting in winter.","is_anonymous":false}`
		resp, parsed := postJSON(t, app, body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid input", parsed["error"])
		assert.Equal(t, []string{"club"}, detailPaths(t, parsed))
		assert.Zero(t, flow.calls)
	})

	t.Run("ShortMessageRejected", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		body := `{"club":"montecchia","message":"short","is_anonymous":false}`
		resp, parsed := postJSON(t, app, body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{"message"}, detailPaths(t, parsed))

		details := parsed["details"].([]any)
		msg := details[0].(map[string]any)["message"].(string)
		assert.Contains(t, msg, "at least 10")
	})

	t.Run("LongMessageRejected", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		long := strings.Repeat("a", 4001)
		body := `{"club":"montecchia","message":"` + long + `","is_anonymous":false}`
		resp, parsed := postJSON(t, app, body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{"message"}, detailPaths(t, parsed))

		details := parsed["details"].([]any)
		msg := details[0].(map[string]any)["message"].(string)
		assert.Contains(t, msg, "at most 4000")
	})

	t.Run("PaddedShortMessageRejected", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		// 5 meaningful characters padded with whitespace
		body := `{"club":"montecchia","message":"   short      ","is_anonymous":false}`
		resp, _ := postJSON(t, app, body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Zero(t, flow.calls)
	})

	t.Run("MissingAnonymousFlagRejected", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		body := `{"club":"montecchia","message":"The range needs more evening lighting in winter."}`
		resp, parsed := postJSON(t, app, body, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, []string{"is_anonymous"}, detailPaths(t, parsed))
	})

	t.Run("AllErrorsCollected", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		resp, parsed := postJSON(t, app, `{"message":"short"}`, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		paths := detailPaths(t, parsed)
		assert.ElementsMatch(t, []string{"club", "message", "is_anonymous"}, paths)
	})

	t.Run("ForwardedForResolvedToFirstEntry", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		_, _ = postJSON(t, app, validBody(), map[string]string{
			"X-Forwarded-For": "203.0.113.1, 10.0.0.1",
			"X-Real-IP":       "192.0.2.9",
		})
		require.NotNil(t, flow.lastMeta)
		assert.Equal(t, "203.0.113.1", flow.lastMeta.Address)
	})

	t.Run("FallsBackToRealIP", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		_, _ = postJSON(t, app, validBody(), map[string]string{
			"X-Real-IP": "192.0.2.9",
		})
		require.NotNil(t, flow.lastMeta)
		assert.Equal(t, "192.0.2.9", flow.lastMeta.Address)
	})

	t.Run("NoHeadersResolvesUnknown", func(t *testing.T) {
		flow := &fakeSuggestionFlow{}
		app := submitApp(flow)

		_, _ = postJSON(t, app, validBody(), nil)
		require.NotNil(t, flow.lastMeta)
		assert.Equal(t, "unknown", flow.lastMeta.Address)
	})

	t.Run("MissingSaltIsConfigurationError", func(t *testing.T) {
		flow := &fakeSuggestionFlow{
			err: businessflow.NewBusinessError("HASHER_NOT_CONFIGURED", "Server configuration error", businessflow.ErrHasherNotConfigured),
		}
		app := submitApp(flow)

		resp, parsed := postJSON(t, app, validBody(), nil)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, false, parsed["ok"])
		assert.Equal(t, "Server configuration error", parsed["error"])
	})

	t.Run("StorageFailureIsOpaque", func(t *testing.T) {
		flow := &fakeSuggestionFlow{
			err: businessflow.NewBusinessError("SAVE_SUGGESTION_FAILED", "Failed to store suggestion", errors.New("pq: deadlock detected")),
		}
		app := submitApp(flow)

		resp, parsed := postJSON(t, app, validBody(), nil)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, false, parsed["ok"])
		assert.NotContains(t, parsed["error"], "deadlock")
	})

	t.Run("HoneypotLooksLikeSuccess", func(t *testing.T) {
		flow := &fakeSuggestionFlow{result: &dto.SubmitSuggestionResult{Stored: false}}
		app := submitApp(flow)

		body := `{"club":"montecchia","message":"The range needs more evening lighting in winter.","is_anonymous":false,"honey":"bot"}`
		resp, parsed := postJSON(t, app, body, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]any{"ok": true}, parsed)
	})
}

package suggestions_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/CivicAgenda/CA-Backend/internal/suggestions"
	"github.com/CivicAgenda/CA-Backend/internal/utils"
)

// postSuggestion invokes CreateHandler directly with an optional userID in
// context, the way the session middleware would inject it. These tests only
// exercise the validation paths that must reject before any database write.
func postSuggestion(t *testing.T, userID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/suggestions", strings.NewReader(body))
	if userID != "" {
		ctx := context.WithValue(req.Context(), utils.ContextUserIDKey, userID)
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	suggestions.CreateHandler(rec, req)
	return rec
}

// TestCreate_RequiresAuth verifies an unauthenticated request is rejected
// with 401.
func TestCreate_RequiresAuth(t *testing.T) {
	rec := postSuggestion(t, "", `{"agenda_id":"manifesto-1","content":"x","author_name":"y"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

// TestCreate_EmptyContentRejected verifies empty content returns 400 before
// any database write (no database is connected in this test).
func TestCreate_EmptyContentRejected(t *testing.T) {
	rec := postSuggestion(t, "user-1", `{"agenda_id":"manifesto-1","content":"   ","author_name":"Asha"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// TestCreate_EmptyAuthorRejected verifies a missing author name returns 400
// before any database write.
func TestCreate_EmptyAuthorRejected(t *testing.T) {
	rec := postSuggestion(t, "user-1", `{"agenda_id":"manifesto-1","content":"Fund rural clinics","author_name":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// TestCreate_ContentTooLongRejected verifies the length cap.
func TestCreate_ContentTooLongRejected(t *testing.T) {
	long := strings.Repeat("a", 2001)
	rec := postSuggestion(t, "user-1", `{"agenda_id":"manifesto-1","content":"`+long+`","author_name":"Asha"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// TestCreate_BadJSONRejected verifies malformed bodies return 400.
func TestCreate_BadJSONRejected(t *testing.T) {
	rec := postSuggestion(t, "user-1", `{"content":`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// TestCreate_MissingAgendaRejected verifies a missing agenda id returns 400.
func TestCreate_MissingAgendaRejected(t *testing.T) {
	rec := postSuggestion(t, "user-1", `{"content":"Fund rural clinics","author_name":"Asha"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

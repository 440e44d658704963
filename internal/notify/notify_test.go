package notify_test

import (
	"crypto/hmac"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CivicAgenda/CA-Backend/internal/notify"
)

// TestSend_SignsPayload verifies the webhook receives a JSON body whose
// signature header validates against the shared secret.
func TestSend_SignsPayload(t *testing.T) {
	const secret = "test-secret"

	var gotBody []byte
	var gotSig string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSig = r.Header.Get("X-Notify-Signature")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	t.Setenv("NOTIFY_WEBHOOK_URL", server.URL)
	t.Setenv("NOTIFY_WEBHOOK_SECRET", secret)

	err := notify.Send(notify.Payload{
		Event:        "suggestion.created",
		SuggestionID: "abc-123",
		AuthorName:   "Asha",
		Content:      "Fund rural clinics",
		Status:       "pending",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(gotBody) == 0 {
		t.Fatal("webhook received no body")
	}
	want := notify.Sign(gotBody, secret)
	if !hmac.Equal([]byte(gotSig), []byte(want)) {
		t.Errorf("signature mismatch: got %q want %q", gotSig, want)
	}
}

// TestSend_NoopWithoutURL verifies Send does nothing (and does not error)
// when NOTIFY_WEBHOOK_URL is unset.
func TestSend_NoopWithoutURL(t *testing.T) {
	t.Setenv("NOTIFY_WEBHOOK_URL", "")

	if err := notify.Send(notify.Payload{Event: "suggestion.created"}); err != nil {
		t.Errorf("expected no-op, got error: %v", err)
	}
}

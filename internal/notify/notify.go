package notify

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"
)

// Payload is the body of the out-of-band notification webhook. The receiving
// end (the mail relay) turns it into the moderator email.
type Payload struct {
	Event        string    `json:"event"`
	AgendaID     string    `json:"agenda_id"`
	SuggestionID string    `json:"suggestion_id"`
	AuthorName   string    `json:"author_name"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	SentAt       time.Time `json:"sent_at"`
}

var client = &http.Client{Timeout: 10 * time.Second}

// Dispatch fires the notification in the background. Failures are logged and
// never surfaced to the request that triggered them.
func Dispatch(p Payload) {
	go func() {
		if err := Send(p); err != nil {
			log.Printf("[notify] %s failed: %v", p.Event, err)
		}
	}()
}

// Send posts the signed payload to NOTIFY_WEBHOOK_URL. A missing URL is a
// silent no-op so local and preview environments need no mail setup.
func Send(p Payload) error {
	url := os.Getenv("NOTIFY_WEBHOOK_URL")
	if url == "" {
		return nil
	}

	if p.SentAt.IsZero() {
		p.SentAt = time.Now().UTC()
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if secret := os.Getenv("NOTIFY_WEBHOOK_SECRET"); secret != "" {
		req.Header.Set("X-Notify-Signature", Sign(raw, secret))
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[notify] %s returned status %d", url, resp.StatusCode)
	}
	return nil
}

// Sign computes the hex HMAC-SHA256 of the body, prefixed the same way the
// receiver expects to verify it.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

package cache

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"
)

func newResponse(body string, headers map[string]string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
	for k, v := range headers {
		resp.Header.Set(k, v)
	}
	return resp
}

func TestResponseToEntry(t *testing.T) {
	expires := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)
	resp := newResponse(`{"id": 1}`, map[string]string{
		"Expires":      expires.Format(http.TimeFormat),
		"Content-Type": "application/json",
	})

	entry, err := ResponseToEntry(resp, time.Minute)
	if err != nil {
		t.Fatalf("ResponseToEntry failed: %v", err)
	}

	if string(entry.Data) != `{"id": 1}` {
		t.Errorf("Data = %q, want original body", entry.Data)
	}
	if entry.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", entry.StatusCode)
	}
	if !entry.Expires.Equal(expires) {
		t.Errorf("Expires = %v, want %v", entry.Expires, expires)
	}

	// Body must be restored for the caller
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to re-read body: %v", err)
	}
	if string(body) != `{"id": 1}` {
		t.Errorf("Restored body = %q, want original", body)
	}
}

func TestResponseToEntry_NilResponse(t *testing.T) {
	if _, err := ResponseToEntry(nil, time.Minute); err == nil {
		t.Error("Expected error for nil response")
	}
}

func TestResponseToEntry_FallbackTTL(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"missing expires", nil},
		{"unparsable expires", map[string]string{"Expires": "-1"}},
		{"past expires", map[string]string{"Expires": time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ResponseToEntry(newResponse(`{}`, tt.headers), time.Minute)
			if err != nil {
				t.Fatalf("ResponseToEntry failed: %v", err)
			}

			ttl := entry.TTL()
			if ttl <= 50*time.Second || ttl > time.Minute {
				t.Errorf("TTL() = %v, want ~1m fallback", ttl)
			}
		})
	}
}

func TestEntryToResponse(t *testing.T) {
	entry := &Entry{
		Data:       []byte(`{"id": 1}`),
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Expires:    time.Now().Add(time.Minute),
		CachedAt:   time.Now(),
	}

	resp := EntryToResponse(entry)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if string(body) != `{"id": 1}` {
		t.Errorf("Body = %q, want cached data", body)
	}
}

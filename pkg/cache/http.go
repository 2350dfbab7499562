package cache

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResponseToEntry converts an HTTP response to a cache Entry.
// It reads the response body and restores it for the caller, and parses
// the Expires header with fallbackTTL as the default lifetime.
func ResponseToEntry(resp *http.Response, fallbackTTL time.Duration) (*Entry, error) {
	if resp == nil {
		return nil, fmt.Errorf("response cannot be nil")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	resp.Body.Close()

	// Restore body for caller
	resp.Body = io.NopCloser(bytes.NewReader(body))

	return &Entry{
		Data:       body,
		StatusCode: resp.StatusCode,
		Headers:    resp.Header.Clone(),
		Expires:    parseExpires(resp.Header, fallbackTTL),
		CachedAt:   time.Now(),
	}, nil
}

// EntryToResponse synthesizes an HTTP response from a cache entry.
func EntryToResponse(entry *Entry) *http.Response {
	return &http.Response{
		StatusCode: entry.StatusCode,
		Status:     http.StatusText(entry.StatusCode),
		Header:     entry.Headers.Clone(),
		Body:       io.NopCloser(bytes.NewReader(entry.Data)),
	}
}

// parseExpires parses the Expires header from HTTP headers.
// Returns the parsed expiration time, or current time + fallbackTTL
// when the header is missing, unparsable, or already in the past.
func parseExpires(headers http.Header, fallbackTTL time.Duration) time.Time {
	expiresStr := headers.Get("Expires")
	if expiresStr == "" {
		return time.Now().Add(fallbackTTL)
	}

	expires, err := http.ParseTime(expiresStr)
	if err != nil {
		return time.Now().Add(fallbackTTL)
	}

	if expires.Before(time.Now()) {
		return time.Now().Add(fallbackTTL)
	}

	return expires
}

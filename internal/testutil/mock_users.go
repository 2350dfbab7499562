// Package testutil provides testing utilities for userfetch.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock users API response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockUsersAPI is a configurable mock users API server for testing.
// Besides canned responses it tracks request counts and the in-flight
// high-water mark, so tests can verify concurrency bounds.
type MockUsersAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	requestCount      int
	inFlight          int
	maxInFlight       int
	lastRequestHeader http.Header
}

// NewMockUsersAPI creates a new mock users API server.
func NewMockUsersAPI() *MockUsersAPI {
	mock := &MockUsersAPI{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.inFlight++
		if mock.inFlight > mock.maxInFlight {
			mock.maxInFlight = mock.inFlight
		}
		mock.lastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		defer func() {
			mock.mu.Lock()
			mock.inFlight--
			mock.mu.Unlock()
		}()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockUsersAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockUsersAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockUsersAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.maxInFlight = 0
	m.lastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockUsersAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockUsersAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetUser configures a 200 response for one user identifier.
func (m *MockUsersAPI) SetUser(id int, body string) {
	m.SetResponse(fmt.Sprintf("/users/%d", id), MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	})
}

// SetUserStatus configures a bare status response for one user identifier.
func (m *MockUsersAPI) SetUserStatus(id int, status int) {
	m.SetResponse(fmt.Sprintf("/users/%d", id), MockResponse{
		StatusCode: status,
		Body:       `{}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	})
}

// SetUserDelay configures a delayed 200 response for one user identifier.
func (m *MockUsersAPI) SetUserDelay(id int, body string, delay time.Duration) {
	m.SetResponse(fmt.Sprintf("/users/%d", id), MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Delay:      delay,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	})
}

// RequestCount returns the number of requests made to the server.
func (m *MockUsersAPI) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// MaxInFlight returns the highest number of requests that were being
// served at the same time.
func (m *MockUsersAPI) MaxInFlight() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxInFlight
}

// LastRequestHeader returns the headers of the most recent request.
func (m *MockUsersAPI) LastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRequestHeader
}

// defaultHandler mimics the users API for unconfigured paths.
func (m *MockUsersAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{}`))
}

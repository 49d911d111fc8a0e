// SPDX-License-Identifier: MIT
package recipes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockServer is a configurable stand-in for the recipe collection endpoint.
type MockServer struct {
	*httptest.Server
	mu         sync.RWMutex
	collection Collection
	status     int
	rawBody    string
	delay      time.Duration
	requests   int
	lastUA     string
	lastAccept string
}

// NewMockServer starts a server answering on every path with the configured collection.
func NewMockServer() *MockServer {
	m := &MockServer{status: http.StatusOK}
	m.SetDefaultData()
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// CollectionURL returns the URL of the collection endpoint.
func (m *MockServer) CollectionURL() string {
	return m.Server.URL + "/recipes"
}

// SetDefaultData installs a small three-recipe collection.
func (m *MockServer) SetDefaultData() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collection = Collection{Recipes: []Recipe{
		{ID: 1, Name: "Classic Margherita Pizza", Image: "https://cdn.dummyjson.com/recipe-images/1.webp", Rating: 4.6, Tags: []string{"Pizza", "Italian"}},
		{ID: 2, Name: "Vegetarian Stir-Fry", Image: "https://cdn.dummyjson.com/recipe-images/2.webp", Rating: 4.7, Tags: []string{"Vegetarian", "Stir-fry", "Asian"}},
		{ID: 3, Name: "Chocolate Chip Cookies", Image: "https://cdn.dummyjson.com/recipe-images/3.webp", Rating: 4.9, Tags: []string{"Cookies", "Dessert", "Baking"}},
	}}
}

// SetRecipes replaces the served collection.
func (m *MockServer) SetRecipes(rs ...Recipe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collection = Collection{Recipes: rs}
	m.rawBody = ""
}

// SetStatus makes the server answer with code. Non-2xx codes send a short text body.
func (m *MockServer) SetStatus(code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = code
}

// SetRawBody serves body verbatim instead of the encoded collection.
func (m *MockServer) SetRawBody(body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rawBody = body
}

// SetDelay holds each response for d or until the client goes away.
func (m *MockServer) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Requests returns the number of requests served so far.
func (m *MockServer) Requests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requests
}

// LastHeaders returns the User-Agent and Accept of the most recent request.
func (m *MockServer) LastHeaders() (userAgent, accept string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastUA, m.lastAccept
}

func (m *MockServer) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests++
	m.lastUA = r.Header.Get("User-Agent")
	m.lastAccept = r.Header.Get("Accept")
	status, raw, delay, coll := m.status, m.rawBody, m.delay, m.collection
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if status < 200 || status > 299 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if raw != "" {
		_, _ = w.Write([]byte(raw))
		return
	}
	_ = json.NewEncoder(w).Encode(coll)
}

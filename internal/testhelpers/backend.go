// Package testhelpers provides shared test fixtures: a no-op logger and
// an in-memory stand-in for the portfolio REST backend.
package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Backend is an in-memory fake of the portfolio REST API. It speaks the
// same envelope as the real backend: bare JSON on reads, a
// success/message object on writes, and imageUrl on uploads.
type Backend struct {
	Server *httptest.Server

	mu          sync.Mutex
	profile     map[string]any
	collections map[string][]map[string]any
	nextID      int64
	requests    []string

	Username string
	Password string

	// FailReads makes every GET return 500, forcing fallback paths.
	FailReads bool
}

// NewBackend starts a fake backend. Close it with Close.
func NewBackend() *Backend {
	b := &Backend{
		profile:     map[string]any{"name": "Test Owner", "social": map[string]any{}},
		collections: make(map[string][]map[string]any),
		nextID:      1,
		Username:    "admin",
		Password:    "secret",
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.handle))
	return b
}

func (b *Backend) Close() { b.Server.Close() }

// URL returns the backend base URL.
func (b *Backend) URL() string { return b.Server.URL }

// Seed replaces a collection's records, assigning ids to records without
// one.
func (b *Backend) Seed(collection string, records ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range records {
		if _, ok := r["id"]; !ok {
			r["id"] = b.nextID
			b.nextID++
		}
	}
	b.collections[collection] = records
}

// Records returns a copy of the collection's current records.
func (b *Backend) Records(collection string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, len(b.collections[collection]))
	copy(out, b.collections[collection])
	return out
}

// Requests returns every request seen so far as "METHOD /path" strings.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *Backend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	b.mu.Unlock()

	path := strings.Trim(r.URL.Path, "/")
	parts := strings.Split(path, "/")

	switch {
	case r.Method == http.MethodPost && path == "upload":
		b.handleUpload(w, r)
	case r.Method == http.MethodPost && path == "admin/login":
		b.handleLogin(w, r)
	case path == "profile":
		b.handleProfile(w, r)
	case len(parts) == 1:
		b.handleCollection(w, r, parts[0])
	case len(parts) == 2:
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		b.handleRecord(w, r, parts[0], id)
	default:
		http.NotFound(w, r)
	}
}

func (b *Backend) handleProfile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		if b.FailReads {
			http.Error(w, "backend down", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, b.profile)
	case http.MethodPut:
		var p map[string]any
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "bad json"})
			return
		}
		b.profile = p
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (b *Backend) handleCollection(w http.ResponseWriter, r *http.Request, col string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		if b.FailReads {
			http.Error(w, "backend down", http.StatusInternalServerError)
			return
		}
		records := b.collections[col]
		if records == nil {
			records = []map[string]any{}
		}
		writeJSON(w, http.StatusOK, records)
	case http.MethodPost:
		var rec map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "bad json"})
			return
		}
		rec["id"] = b.nextID
		b.nextID++
		b.collections[col] = append(b.collections[col], rec)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (b *Backend) handleRecord(w http.ResponseWriter, r *http.Request, col string, id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i, rec := range b.collections[col] {
		if recordID(rec) == id {
			idx = i
			break
		}
	}

	switch r.Method {
	case http.MethodGet:
		if b.FailReads {
			http.Error(w, "backend down", http.StatusInternalServerError)
			return
		}
		if idx < 0 {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, b.collections[col][idx])
	case http.MethodPut:
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "not found"})
			return
		}
		var rec map[string]any
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "bad json"})
			return
		}
		rec["id"] = id
		b.collections[col][idx] = rec
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	case http.MethodDelete:
		if idx < 0 {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": "not found"})
			return
		}
		b.collections[col] = append(b.collections[col][:idx], b.collections[col][idx+1:]...)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "bad multipart"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "image field required"})
		return
	}
	defer file.Close()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"imageUrl": "/uploads/" + header.Filename,
	})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "bad json"})
		return
	}
	if req.Username != b.Username || req.Password != b.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func recordID(rec map[string]any) int64 {
	switch v := rec["id"].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	default:
		return 0
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		fmt.Println("encode response:", err)
	}
}

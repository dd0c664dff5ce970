package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"taskmanager/m/internal/migrations"
)

const testSecret = "test-secret"

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	migrations.Run(db)
	return New(db, testSecret, time.Hour)
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func registerUser(t *testing.T, router http.Handler, username, password, role string) int64 {
	t.Helper()
	body := map[string]string{"username": username, "password": password}
	if role != "" {
		body["role"] = role
	}
	rec := doRequest(t, router, http.MethodPost, "/auth/register", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: got status %d, body %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, rec, &resp)
	return resp.ID
}

func loginToken(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]string{"username": username, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: got status %d, body %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &resp)
	if resp.AccessToken == "" {
		t.Fatalf("login %s: empty access_token", username)
	}
	return resp.AccessToken
}

func TestIndexAndHealth(t *testing.T) {
	router := newTestHandler(t).Router()

	rec := doRequest(t, router, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("index: got status %d", rec.Code)
	}
	var index map[string]string
	decodeBody(t, rec, &index)
	if index["msg"] != "Task Manager API running" {
		t.Errorf("index msg = %q", index["msg"])
	}

	rec = doRequest(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: got status %d", rec.Code)
	}
	var health map[string]string
	decodeBody(t, rec, &health)
	if health["status"] != "ok" {
		t.Errorf("health status = %q", health["status"])
	}
}

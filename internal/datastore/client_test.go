package datastore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDatasetteClient_BatchInsert_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/-/insert/olib/openlibrary_docs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer testtoken" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	client := NewDatasetteClient(ts.URL, "testtoken")
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	rows := []map[string]any{{"key": "/works/OL1W"}}
	if err := client.BatchInsert("olib", DocsTable, rows); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestDatasetteClient_BatchInsert_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		if err := json.NewEncoder(w).Encode(map[string]any{"error": "forbidden"}); err != nil {
			t.Errorf("Failed to encode error response: %v", err)
		}
	}))
	defer ts.Close()

	client := NewDatasetteClient(ts.URL, "testtoken")
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	rows := []map[string]any{{"key": "/works/OL1W"}}
	if err := client.BatchInsert("olib", DocsTable, rows); err == nil {
		t.Errorf("expected error, got nil")
	}
}

func TestDatasetteClient_ConnectRejectsRelativeURL(t *testing.T) {
	client := NewDatasetteClient("datasette.local", "")
	if err := client.Connect(); err == nil {
		t.Errorf("expected error for relative base URL")
	}
}

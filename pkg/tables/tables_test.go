package tables

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAssignTable(t *testing.T) {
	t.Parallel()

	var gotReq assignRequest
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if r.Method != http.MethodPost || r.URL.Path != "/v1/tables/assign" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"table_number":7}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Token: "secret"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	table, err := client.AssignTable(context.Background(), "2026-09-01", "19:00", 4)
	if err != nil {
		t.Fatalf("AssignTable() error = %v", err)
	}
	if table != 7 {
		t.Fatalf("table = %d, want 7", table)
	}
	if gotReq.Date != "2026-09-01" || gotReq.Time != "19:00" || gotReq.PartySize != 4 {
		t.Fatalf("request payload = %+v", gotReq)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("authorization = %q", gotAuth)
	}
}

func TestClientAssignTableServiceError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"no table for that slot"}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.AssignTable(context.Background(), "2026-09-01", "19:00", 4); err == nil {
		t.Fatal("expected error from service error payload")
	}
}

func TestClientAssignTableHTTPFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if _, err := client.AssignTable(context.Background(), "2026-09-01", "19:00", 4); err == nil {
		t.Fatal("expected error for http 500")
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error for missing url")
	}
}

func TestStaticDefaultsToTableThree(t *testing.T) {
	t.Parallel()

	table, err := Static{}.AssignTable(context.Background(), "2026-09-01", "19:00", 2)
	if err != nil {
		t.Fatalf("AssignTable() error = %v", err)
	}
	if table != 3 {
		t.Fatalf("table = %d, want 3", table)
	}

	table, _ = Static{Table: 9}.AssignTable(context.Background(), "", "", 0)
	if table != 9 {
		t.Fatalf("table = %d, want 9", table)
	}
}

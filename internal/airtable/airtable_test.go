package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("appBase", "Reviews", "tok123")
	c.BaseURL = srv.URL
	return c
}

func TestListRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/appBase/Reviews" {
			t.Errorf("path = %s, want /appBase/Reviews", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		_, _ = w.Write([]byte(`{"records":[
			{"id":"rec1","fields":{"Name":"Ada","Review":"Great"}},
			{"id":"rec2","fields":{"Name":"Grace"}}
		]}`))
	})

	records, err := c.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ID != "rec1" || records[0].StringField("Name") != "Ada" {
		t.Fatalf("records[0] = %+v", records[0])
	}
	// Missing and non-string fields read as "".
	if got := records[1].StringField("Review"); got != "" {
		t.Fatalf("missing field = %q, want empty", got)
	}
}

func TestListRecordsEmptyTable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"records":[]}`))
	})

	records, err := c.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords() error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("len(records) = %d, want 0", len(records))
	}
}

func TestListRecordsUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	})

	if _, err := c.ListRecords(context.Background()); err == nil {
		t.Fatal("ListRecords() error = nil, want non-2xx failure")
	}
}

func TestCreateRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		var body struct {
			Fields map[string]any `json:"fields"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Fields["Name"] != "Ada" || body.Fields["Review"] != "Great" {
			t.Errorf("fields = %v", body.Fields)
		}
		_, _ = w.Write([]byte(`{"id":"recNew","fields":{"Name":"Ada","Review":"Great"}}`))
	})

	rec, err := c.CreateRecord(context.Background(), map[string]any{
		"Name":   "Ada",
		"Review": "Great",
	})
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	if rec.ID != "recNew" {
		t.Fatalf("rec.ID = %q, want recNew", rec.ID)
	}
}

func TestDeleteRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		if r.URL.Path != "/appBase/Reviews/rec1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"deleted":true,"id":"rec1"}`))
	})

	if err := c.DeleteRecord(context.Background(), "rec1"); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
}

func TestDeleteRecordMissingRow(t *testing.T) {
	// A concurrent consumer may have deleted the row first; Airtable
	// answers 404 and the client reports it as an error.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	if err := c.DeleteRecord(context.Background(), "recGone"); err == nil {
		t.Fatal("DeleteRecord() error = nil, want 404 failure")
	}
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newServer(t *testing.T, routes map[string]func(w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func jsonBody(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func status(code int) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(code)
	}
}

func TestLoadTerms(t *testing.T) {
	srv := newServer(t, map[string]func(http.ResponseWriter){
		"/api/terms": jsonBody(`[{"id":"a","title":"Alpha","definition":"first","sources":[{"title":"book"}]},{"id":"b","title":"Beta","definition":"second","sources":[]}]`),
	})

	terms, err := New(srv.URL).LoadTerms(context.Background())
	if err != nil {
		t.Fatalf("LoadTerms failed: %v", err)
	}
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	if terms[0].ID != "a" || terms[1].Title != "Beta" {
		t.Errorf("unexpected terms %+v", terms)
	}
	if terms[0].Sources[0].URL != "" {
		t.Errorf("expected empty url, got %q", terms[0].Sources[0].URL)
	}
}

func TestLoadTermsNull(t *testing.T) {
	srv := newServer(t, map[string]func(http.ResponseWriter){
		"/api/terms": jsonBody(`null`),
	})

	terms, err := New(srv.URL).LoadTerms(context.Background())
	if err != nil {
		t.Fatalf("LoadTerms failed: %v", err)
	}
	if terms == nil || len(terms) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", terms)
	}
}

func TestLoadTermsServerError(t *testing.T) {
	srv := newServer(t, map[string]func(http.ResponseWriter){
		"/api/terms": status(http.StatusInternalServerError),
	})

	_, err := New(srv.URL).LoadTerms(context.Background())
	if err == nil {
		t.Fatal("expected error for 500")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if le.Resource != "terms" || le.Status != http.StatusInternalServerError {
		t.Errorf("unexpected error fields %+v", le)
	}
	if err.Error() != "Failed to load terms" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestLoadGraph(t *testing.T) {
	srv := newServer(t, map[string]func(http.ResponseWriter){
		"/api/graph": jsonBody(`{"nodes":[{"id":"a","position":{"x":0,"y":0},"data":{"label":"A","definition":"","sources":[]}},{"id":"b","label":"B"}],"edges":[{"id":"e1","source":"a","target":"b","label":"uses"}]}`),
	})

	doc, err := New(srv.URL + "/").LoadGraph(context.Background())
	if err != nil {
		t.Fatalf("LoadGraph failed: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Nodes[1].Data.Label != "B" {
		t.Errorf("flat node label not decoded, got %q", doc.Nodes[1].Data.Label)
	}
	if doc.Edges[0].Label != "uses" {
		t.Errorf("unexpected edge label %q", doc.Edges[0].Label)
	}
}

func TestLoadGraphNotFound(t *testing.T) {
	srv := newServer(t, nil)

	_, err := New(srv.URL).LoadGraph(context.Background())
	if err == nil || err.Error() != "Failed to load graph" {
		t.Fatalf("expected graph load error, got %v", err)
	}
}

func TestLoadGraphBadJSON(t *testing.T) {
	srv := newServer(t, map[string]func(http.ResponseWriter){
		"/api/graph": jsonBody(`{"nodes":`),
	})

	_, err := New(srv.URL).LoadGraph(context.Background())
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
}

func TestLoadTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).LoadTerms(context.Background())
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if le.Status != 0 {
		t.Errorf("expected zero status for transport failure, got %d", le.Status)
	}
}

func TestLoadTermAndHealth(t *testing.T) {
	srv := newServer(t, map[string]func(http.ResponseWriter){
		"/api/terms/slot": jsonBody(`{"id":"slot","title":"Slot","definition":"d","sources":[]}`),
		"/health":         jsonBody(`{"status":"ok"}`),
	})
	c := New(srv.URL)

	term, err := c.LoadTerm(context.Background(), "slot")
	if err != nil {
		t.Fatalf("LoadTerm failed: %v", err)
	}
	if term.Title != "Slot" {
		t.Errorf("unexpected term %+v", term)
	}

	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}

	if _, err := c.LoadTerm(context.Background(), "missing"); err == nil {
		t.Error("expected error for missing term")
	}
}

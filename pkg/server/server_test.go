package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sourceloc/pkg/config"
	"github.com/matzehuels/sourceloc/pkg/observability"
	"github.com/matzehuels/sourceloc/pkg/scm"
	"github.com/matzehuels/sourceloc/pkg/source"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	reg, err := scm.FromConfig(&config.Config{Integrations: config.Integrations{
		GitLab: []config.Integration{{Host: "gitlab.example.com"}},
	}})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	srv := httptest.NewServer(NewServer(reg, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func entityJSON(annotations map[string]string) string {
	b, _ := json.Marshal(map[string]any{
		"apiVersion": "backstage.io/v1alpha1",
		"kind":       "Component",
		"metadata": map[string]any{
			"name":        "svc",
			"annotations": annotations,
		},
	})
	return string(b)
}

func TestResolveSourceLocation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		want       SourceLocationResponse
	}{
		{
			name:       "github",
			path:       "/v1/source-location",
			body:       entityJSON(map[string]string{"backstage.io/source-location": "url:https://github.com/o/r/tree/main/"}),
			wantStatus: http.StatusOK,
			want:       SourceLocationResponse{URL: "https://github.com/o/r/tree/main/", Type: "github", Reason: source.ReasonResolved},
		},
		{
			name:       "gitlab with edit url",
			path:       "/v1/source-location?edit=true",
			body:       entityJSON(map[string]string{"backstage.io/source-location": "url:https://gitlab.example.com/g/p/-/blob/main/README.md"}),
			wantStatus: http.StatusOK,
			want: SourceLocationResponse{
				URL:     "https://gitlab.example.com/g/p/-/blob/main/README.md",
				Type:    "gitlab",
				EditURL: "https://gitlab.example.com/g/p/-/edit/main/README.md",
				Reason:  source.ReasonResolved,
			},
		},
		{
			name:       "unknown host",
			path:       "/v1/source-location",
			body:       entityJSON(map[string]string{"backstage.io/source-location": "url:https://git.corp/x"}),
			wantStatus: http.StatusOK,
			want:       SourceLocationResponse{URL: "https://git.corp/x", Reason: source.ReasonNoIntegration},
		},
		{
			name:       "no annotation",
			path:       "/v1/source-location",
			body:       entityJSON(nil),
			wantStatus: http.StatusNotFound,
			want:       SourceLocationResponse{Reason: source.ReasonNoAnnotation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tt.path, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var got SourceLocationResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("body = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveSourceLocationInvalidReference(t *testing.T) {
	srv := newTestServer(t)
	body := entityJSON(map[string]string{"backstage.io/source-location": "https://github.com/o/r"})

	resp, err := http.Post(srv.URL+"/v1/source-location", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var got SourceLocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Reason != source.ReasonInvalidReference || got.Error == "" || got.URL != "" {
		t.Errorf("body = %+v", got)
	}
}

func TestResolveSourceLocationBadBody(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{"", "{", `{"kind":"Component"}`} {
		resp, err := http.Post(srv.URL+"/v1/source-location", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestResolveSourceLocationManagedByFallback(t *testing.T) {
	srv := newTestServer(t, WithResolverOptions(source.WithManagedByFallback()))
	body := entityJSON(map[string]string{
		"backstage.io/managed-by-location": "url:https://github.com/o/r/blob/main/catalog-info.yaml",
	})

	resp, err := http.Post(srv.URL+"/v1/source-location", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestListIntegrations(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/integrations")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got ListIntegrationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	// gitlab.example.com plus the four public defaults.
	if got.Total != 5 || len(got.Integrations) != 5 {
		t.Fatalf("total = %d, integrations = %d", got.Total, len(got.Integrations))
	}
	if got.Integrations[0] != (IntegrationResponse{Type: "github", Title: "github.com", Host: "github.com"}) {
		t.Errorf("first = %+v", got.Integrations[0])
	}
}

func TestHealthAndRequestID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("missing generated request id")
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(middleware.RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestLoggingMiddlewareHooks(t *testing.T) {
	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if h.requests != 1 || h.status != http.StatusTeapot {
		t.Errorf("hooks saw requests=%d status=%d", h.requests, h.status)
	}
	if !strings.Contains(buf.String(), "status=418") {
		t.Errorf("log output %q missing status", buf.String())
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	requests int
	status   int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = status
}

func TestNilRegistryServer(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil, WithLogger(log.New(io.Discard))))
	t.Cleanup(srv.Close)

	body := entityJSON(map[string]string{"backstage.io/source-location": "url:https://github.com/o/r"})
	resp, err := http.Post(srv.URL+"/v1/source-location?edit=true", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got SourceLocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := SourceLocationResponse{URL: "https://github.com/o/r", Reason: source.ReasonNoIntegration}
	if got != want {
		t.Errorf("body = %+v, want %+v", got, want)
	}
}

func TestResolveSourceLocationBodyErrors(t *testing.T) {
	tests := []struct {
		name string
		body io.Reader
		want int
	}{
		{"oversized", strings.NewReader(strings.Repeat("x", MaxEntitySize+1)), http.StatusRequestEntityTooLarge},
		{"read failure", failingReader{}, http.StatusBadRequest},
	}

	rt := newRoutes(nil, source.NewResolver(nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/source-location", tt.body)
			rt.resolveSourceLocation(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

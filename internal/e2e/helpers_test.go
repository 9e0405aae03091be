package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"ollamakit/internal/adapter"
	"ollamakit/internal/httpapi"
	"ollamakit/internal/inference"
	"ollamakit/internal/registry"
	"ollamakit/internal/session"
	"ollamakit/internal/transport"
)

// liveBaseURL returns the model server to test against, skipping the test
// when OLLAMAKIT_E2E_BASE_URL is unset.
func liveBaseURL(t *testing.T) string {
	t.Helper()
	base := strings.TrimSpace(os.Getenv("OLLAMAKIT_E2E_BASE_URL"))
	if base == "" {
		t.Skip("OLLAMAKIT_E2E_BASE_URL not set; skipping live model server test")
	}
	return base
}

// liveModel picks OLLAMAKIT_E2E_MODEL or the first installed model.
func liveModel(t *testing.T, svc *adapter.Adapter) string {
	t.Helper()
	if m := strings.TrimSpace(os.Getenv("OLLAMAKIT_E2E_MODEL")); m != "" {
		return m
	}
	names, err := svc.ModelChoices(context.Background())
	if err != nil {
		t.Skipf("no model to test with: %v", err)
	}
	return names[0]
}

func newLiveAdapter(t *testing.T) *adapter.Adapter {
	t.Helper()
	tc := transport.New(transport.Config{BaseURL: liveBaseURL(t)})
	return adapter.New(registry.New(tc), inference.New(tc))
}

func newDashboard(t *testing.T, svc *adapter.Adapter) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(httpapi.NewMux(svc, session.NewStore()))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

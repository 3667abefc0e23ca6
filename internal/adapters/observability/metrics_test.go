package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tripwise/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveStorage("memory", "hit")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{"tripwise_http_requests_total", "tripwise_storage_events_total"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestNewMetricsServer_DisabledWithoutAddr(t *testing.T) {
	if srv := observability.NewMetricsServer("", observability.InitRegistry()); srv != nil {
		t.Fatal("expected nil server for empty addr")
	}
	if srv := observability.NewMetricsServer(":0", observability.InitRegistry()); srv == nil || srv.Addr != ":0" {
		t.Fatalf("unexpected server: %+v", srv)
	}
}

func TestLabelErr(t *testing.T) {
	if observability.LabelErr(nil) != "none" {
		t.Fatal("nil error should label as none")
	}
	if got := observability.LabelErr(io.EOF); got != "*errors.errorString" {
		t.Fatalf("unexpected label %q", got)
	}
}

package web

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/louisbranch/setupassistant/internal/plan"
	"github.com/louisbranch/setupassistant/internal/services/shared/htmx"
	"github.com/louisbranch/setupassistant/internal/ui/setupassistant"
)

func newTestHandler(t *testing.T) (http.Handler, *bytes.Buffer) {
	t.Helper()
	catalog, err := plan.LoadEmbedded()
	if err != nil {
		t.Fatalf("load plans: %v", err)
	}
	var logs bytes.Buffer
	h, err := NewHandler(Config{Catalog: catalog, Logger: log.New(&logs, "", 0)})
	if err != nil {
		t.Fatalf("NewHandler() = %v", err)
	}
	return h, &logs
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func assistantIDFromBody(t *testing.T, body string) string {
	t.Helper()
	const marker = `<ol id="`
	start := strings.Index(body, marker)
	if start < 0 {
		t.Fatalf("no step list in %q", body)
	}
	start += len(marker)
	end := strings.Index(body[start:], `"`)
	if end <= 0 {
		t.Fatalf("malformed step list id in %q", body)
	}
	return body[start : start+end]
}

func TestNewHandlerRequiresCatalog(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{}); err == nil {
		t.Fatal("expected error without catalog")
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	catalog, err := plan.LoadEmbedded()
	if err != nil {
		t.Fatalf("load plans: %v", err)
	}
	if _, err := NewServer(Config{Catalog: catalog}); err == nil {
		t.Fatal("expected error without http address")
	}
	server, err := NewServer(Config{HTTPAddr: "127.0.0.1:0", Catalog: catalog})
	if err != nil {
		t.Fatalf("NewServer() = %v", err)
	}
	if server.Addr() != "127.0.0.1:0" {
		t.Fatalf("Addr() = %q", server.Addr())
	}
	server.Close()
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	catalog, err := plan.LoadEmbedded()
	if err != nil {
		t.Fatalf("load plans: %v", err)
	}
	server, err := NewServer(Config{HTTPAddr: "127.0.0.1:0", Catalog: catalog})
	if err != nil {
		t.Fatalf("NewServer() = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := server.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe() = %v", err)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(headerRequestID) == "" {
		t.Fatal("expected request id header")
	}
}

func TestIndexListsPlans(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`<!DOCTYPE html>`, `href="/plans/sales-cloud"`, `href="/plans/service-desk"`, `Setup plans`, `3 steps`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in %q", want, body)
		}
	}
}

func TestIndexLocalizedByQueryParam(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil))
	if !strings.Contains(rec.Body.String(), "Planos de configuração") {
		t.Fatalf("expected portuguese title in %q", rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "sa_lang=pt-BR") {
		t.Fatalf("expected language cookie, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestShowPlanRendersAssistant(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/plans/sales-cloud", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	assistantID := assistantIDFromBody(t, body)
	for _, want := range []string{
		`<!DOCTYPE html>`,
		`<section class="slds-card">`,
		`id="` + assistantID + `-step-0"`,
		`id="` + assistantID + `-step-2"`,
		`hx-post="/plans/sales-cloud/steps/1/toggle?assistant=` + assistantID + `"`,
		`hx-target="closest li"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in %q", want, body)
		}
	}
}

func TestShowPlanGeneratedIDsStartWithLetter(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	for i := 0; i < 200; i++ {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/plans/sales-cloud", nil))
		assistantID := assistantIDFromBody(t, rec.Body.String())
		if first := assistantID[0]; first < 'a' || first > 'z' {
			t.Fatalf("assistant id %q starts with %q, want a letter", assistantID, first)
		}
	}
}

func TestShowPlanHTMXReturnsFragment(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/plans/service-desk", nil)
	req.Header.Set(htmx.RequestHeaderKey, "true")
	rec := serve(h, req)
	body := rec.Body.String()
	if strings.Contains(body, "<!DOCTYPE html>") {
		t.Fatalf("htmx response should not include layout: %q", body)
	}
	if !strings.HasPrefix(body, "<title>Set up your service desk</title>") {
		t.Fatalf("expected title prefix in %q", body)
	}
	if !strings.Contains(body, `class="slds-setup-assistant service-desk"`) {
		t.Fatalf("expected plan class in %q", body)
	}
	if strings.Contains(body, "slds-card") {
		t.Fatalf("non-card plan rendered card: %q", body)
	}
}

func TestShowPlanUnknown(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/plans/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func toggleRequest(path string, isOpen string) *http.Request {
	form := url.Values{}
	if isOpen != "" {
		form.Set("is_open", isOpen)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(htmx.RequestHeaderKey, "true")
	return req
}

func TestToggleStepOpensAndRecordsMetrics(t *testing.T) {
	t.Parallel()

	h, logs := newTestHandler(t)
	rec := serve(h, toggleRequest("/plans/sales-cloud/steps/2/toggle?assistant=abc", "false"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %q", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		`<li class="slds-setup-assistant__item" id="abc-step-2">`,
		`slds-is-open`,
		`aria-expanded="true"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in %q", want, body)
		}
	}
	if got := rec.Header().Get(htmx.TriggerHeaderKey); got != stepToggledTrigger {
		t.Fatalf("trigger = %q, want %q", got, stepToggledTrigger)
	}
	if !strings.Contains(logs.String(), "plan sales-cloud step 3 opened") {
		t.Fatalf("expected toggle log, got %q", logs.String())
	}

	metrics := serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	want := `setup_assistant_step_toggles_total{plan="sales-cloud",state="opened"} 1`
	if !strings.Contains(metrics.Body.String(), want) {
		t.Fatalf("expected %q in metrics output", want)
	}
}

func TestToggleStepCloses(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	rec := serve(h, toggleRequest("/plans/sales-cloud/steps/1/toggle?assistant=abc", "true"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "slds-is-open") {
		t.Fatalf("expected closed step, got %q", rec.Body.String())
	}
}

func TestToggleStepErrors(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandler(t)
	tests := []struct {
		name   string
		path   string
		isOpen string
		want   int
	}{
		{name: "unknown plan", path: "/plans/missing/steps/0/toggle?assistant=abc", want: http.StatusNotFound},
		{name: "bad index", path: "/plans/sales-cloud/steps/x/toggle?assistant=abc", want: http.StatusBadRequest},
		{name: "index out of range", path: "/plans/sales-cloud/steps/9/toggle?assistant=abc", want: http.StatusNotFound},
		{name: "missing assistant", path: "/plans/sales-cloud/steps/1/toggle", want: http.StatusBadRequest},
		{name: "invalid assistant", path: "/plans/sales-cloud/steps/1/toggle?assistant=%3Cx%3E", want: http.StatusBadRequest},
		{name: "bad open flag", path: "/plans/sales-cloud/steps/1/toggle?assistant=abc", isOpen: "maybe", want: http.StatusBadRequest},
		{name: "not expandable", path: "/plans/sales-cloud/steps/0/toggle?assistant=abc", want: http.StatusConflict},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(h, toggleRequest(tc.path, tc.isOpen))
			if rec.Code != tc.want {
				body, _ := io.ReadAll(rec.Body)
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.want, body)
			}
		})
	}
}

func TestValidAssistantID(t *testing.T) {
	t.Parallel()

	if !validAssistantID("abc-DEF_123") {
		t.Fatal("expected id to be valid")
	}
	for _, value := range []string{"", "a b", "<x>", strings.Repeat("a", maxAssistantIDLen+1)} {
		if validAssistantID(value) {
			t.Fatalf("validAssistantID(%q) = true, want false", value)
		}
	}
}

func TestToggleStepErrorHidesDetail(t *testing.T) {
	t.Parallel()

	h, logs := newTestHandler(t)
	rec := serve(h, toggleRequest("/plans/sales-cloud/steps/x/toggle?assistant=abc", ""))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "strconv") || strings.Contains(body, "invalid step index") {
		t.Fatalf("response leaked error detail: %q", body)
	}
	if !strings.Contains(body, http.StatusText(http.StatusBadRequest)) {
		t.Fatalf("expected status text in %q", body)
	}
	if !strings.Contains(logs.String(), "invalid step index") {
		t.Fatalf("expected error detail in logs, got %q", logs.String())
	}
}

func TestWarnInvalidPropsLogsMissingSteps(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := &handlers{logger: log.New(&logs, "", 0)}
	h.warnInvalidProps("empty", setupassistant.Props{})
	if !strings.Contains(logs.String(), "warning: plan empty: setup assistant steps are required") {
		t.Fatalf("expected warning, got %q", logs.String())
	}

	logs.Reset()
	h.warnInvalidProps("ok", setupassistant.Props{Steps: []setupassistant.Step{}})
	if logs.Len() != 0 {
		t.Fatalf("unexpected warning %q", logs.String())
	}
}

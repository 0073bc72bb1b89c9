package htmx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type testComponent struct {
	body string
}

func (c testComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, c.body)
	return err
}

func TestIsHTMXRequest(t *testing.T) {
	t.Run("missing_request_is_not_htmx", func(t *testing.T) {
		t.Parallel()
		if got := IsHTMXRequest(nil); got {
			t.Fatalf("IsHTMXRequest(nil) = true, want false")
		}
	})

	t.Run("true_request_is_htmx", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/plans/a", nil)
		r.Header.Set(RequestHeaderKey, "true")
		if got := IsHTMXRequest(r); !got {
			t.Fatalf("IsHTMXRequest(request) = false, want true")
		}
	})
}

func TestTitleTag(t *testing.T) {
	t.Parallel()
	got := TitleTag(`Setup <Sales>`)
	want := "<title>Setup &lt;Sales&gt;</title>"
	if got != want {
		t.Fatalf("TitleTag(...) = %q, want %q", got, want)
	}
	if TitleTag("  ") != "" {
		t.Fatal("expected blank title to produce no tag")
	}
}

func TestRenderPageForNonHTMXUsesFullRender(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/plans/a", nil)
	w := httptest.NewRecorder()

	err := RenderPage(w, r, testComponent{body: "<ol>fragment</ol>"}, testComponent{body: "<html>full</html>"}, "Plan", 0)
	if err != nil {
		t.Fatalf("RenderPage() = %v", err)
	}
	if got := w.Body.String(); got != "<html>full</html>" {
		t.Fatalf("rendered body = %q, want full page body", got)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRenderPageForHTMXUsesFragmentWithTitle(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/plans/a", nil)
	r.Header.Set(RequestHeaderKey, "true")
	w := httptest.NewRecorder()

	err := RenderPage(w, r, testComponent{body: "<ol>fragment</ol>"}, testComponent{body: "<html>full</html>"}, "Plan", http.StatusAccepted)
	if err != nil {
		t.Fatalf("RenderPage() = %v", err)
	}
	if got := w.Body.String(); got != "<title>Plan</title><ol>fragment</ol>" {
		t.Fatalf("rendered body = %q", got)
	}
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
}

func TestRenderPageFallsBackToFragment(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/plans/a", nil)
	w := httptest.NewRecorder()

	if err := RenderPage(w, r, testComponent{body: "<li>only</li>"}, nil, "", 0); err != nil {
		t.Fatalf("RenderPage() = %v", err)
	}
	if got := w.Body.String(); got != "<li>only</li>" {
		t.Fatalf("rendered body = %q", got)
	}
}

func TestSetTrigger(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	SetTrigger(w, "setup-step-toggled")
	if got := w.Header().Get(TriggerHeaderKey); got != "setup-step-toggled" {
		t.Fatalf("trigger header = %q", got)
	}
}

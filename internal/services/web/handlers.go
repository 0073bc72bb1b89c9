package web

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/louisbranch/setupassistant/internal/plan"
	apperrors "github.com/louisbranch/setupassistant/internal/platform/errors"
	"github.com/louisbranch/setupassistant/internal/services/shared/htmx"
	"github.com/louisbranch/setupassistant/internal/services/shared/i18nhttp"
	"github.com/louisbranch/setupassistant/internal/ui/i18n"
	"github.com/louisbranch/setupassistant/internal/ui/setupassistant"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/language"
)

const (
	assistantParam     = "assistant"
	maxAssistantIDLen  = 64
	stepToggledTrigger = "setup-step-toggled"
)

var tracer = otel.Tracer("setupassistant/web")

type handlers struct {
	catalog         *plan.Catalog
	defaultLanguage language.Tag
	logger          *log.Logger
	metrics         *metrics
}

// localize resolves the request language and persists an explicit choice.
func (h *handlers) localize(w http.ResponseWriter, r *http.Request) (language.Tag, i18n.Localizer) {
	tag, persist := i18nhttp.ResolveTag(r, h.defaultLanguage)
	if persist {
		i18nhttp.SetLanguageCookie(w, tag)
	}
	return tag, i18nhttp.Printer(tag)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	tag, loc := h.localize(w, r)
	fragment := planIndex(h.catalog.Plans(), loc)
	title := i18n.T(loc, i18n.KeyPlansTitle)
	if err := htmx.RenderPage(w, r, fragment, pageLayout(title, tag, fragment), title, http.StatusOK); err != nil {
		h.logger.Printf("render plan index: %v", err)
	}
}

func (h *handlers) showPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "setupassistant.render_plan")
	defer span.End()
	r = r.WithContext(ctx)

	name := chi.URLParam(r, "plan")
	span.SetAttributes(attribute.String("setupassistant.plan", name))
	p, err := h.catalog.Get(name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	start := time.Now()
	tag, loc := h.localize(w, r)
	assistant := h.newAssistant(p, "", loc)
	fragment := planFragment(p, assistant)
	title := p.Title
	if title == "" {
		title = p.Name
	}
	if err := htmx.RenderPage(w, r, fragment, pageLayout(title, tag, fragment), title, http.StatusOK); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render plan")
		h.logger.Printf("render plan %s: %v", p.Name, err)
		return
	}
	span.SetAttributes(attribute.String("setupassistant.id", assistant.ID()))
	h.metrics.observeRender(p.Name, time.Since(start))
}

func (h *handlers) toggleStep(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "setupassistant.toggle_step")
	defer span.End()
	r = r.WithContext(ctx)

	p, err := h.catalog.Get(chi.URLParam(r, "plan"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(w, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid step index", err))
		return
	}
	assistantID := strings.TrimSpace(r.URL.Query().Get(assistantParam))
	if !validAssistantID(assistantID) {
		h.writeError(w, apperrors.New(apperrors.CodeInvalidRequest, "invalid assistant id"))
		return
	}
	if err := r.ParseForm(); err != nil {
		h.writeError(w, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid form", err))
		return
	}
	currentOpen := false
	if raw := strings.TrimSpace(r.PostForm.Get("is_open")); raw != "" {
		currentOpen, err = strconv.ParseBool(raw)
		if err != nil {
			h.writeError(w, apperrors.Wrap(apperrors.CodeInvalidRequest, "invalid is_open value", err))
			return
		}
	}
	span.SetAttributes(
		attribute.String("setupassistant.plan", p.Name),
		attribute.Int("setupassistant.step_index", index),
		attribute.Bool("setupassistant.was_open", currentOpen),
	)

	_, loc := h.localize(w, r)
	assistant := h.newAssistant(p, assistantID, loc)
	props, err := assistant.Toggle(r, index, currentOpen)
	if err != nil {
		h.writeError(w, err)
		return
	}
	htmx.SetTrigger(w, stepToggledTrigger)
	if err := htmx.RenderPage(w, r, assistant.StepComponent(props), nil, "", http.StatusOK); err != nil {
		span.RecordError(err)
		h.logger.Printf("render toggled step %s/%d: %v", p.Name, index, err)
	}
}

// newAssistant builds the assistant for p. An empty assistantID lets the
// assistant generate its own id.
func (h *handlers) newAssistant(p plan.Plan, assistantID string, loc i18n.Localizer) *setupassistant.Assistant {
	props := p.Props(plan.PropsOptions{
		ID:                 assistantID,
		Localizer:          loc,
		OnStepToggleIsOpen: h.onStepToggle(p.Name),
	})
	var assistant *setupassistant.Assistant
	assistant = setupassistant.New(props,
		setupassistant.WithLocalizer(loc),
		setupassistant.WithToggleURL(func(index int) string {
			return stepTogglePath(p.Name, index, assistant.ID())
		}),
	)
	h.warnInvalidProps(p.Name, assistant.Props())
	return assistant
}

// warnInvalidProps logs contract violations; rendering still proceeds.
func (h *handlers) warnInvalidProps(planName string, props setupassistant.Props) {
	if err := props.Validate(); err != nil {
		h.logger.Printf("warning: plan %s: %v", planName, err)
	}
}

func (h *handlers) onStepToggle(planName string) setupassistant.ToggleFunc {
	return func(r *http.Request, toggle setupassistant.StepToggle) {
		state := "opened"
		if toggle.IsOpen {
			state = "closed"
		}
		h.metrics.incToggle(planName, state)
		h.logger.Printf("plan %s step %d %s request_id=%s", planName, toggle.Index+1, state, requestIDFromContext(r.Context()))
	}
}

// writeError maps domain error codes to HTTP responses.
func (h *handlers) writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	switch status {
	case http.StatusInternalServerError:
		h.logger.Printf("setup assistant request failed: %v", err)
		http.Error(w, http.StatusText(status), status)
	case http.StatusNotFound:
		http.Error(w, http.StatusText(status), status)
	default:
		h.logger.Printf("setup assistant request rejected (%d): %v", status, err)
		http.Error(w, http.StatusText(status), status)
	}
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func validAssistantID(value string) bool {
	if value == "" || len(value) > maxAssistantIDLen {
		return false
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

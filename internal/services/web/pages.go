package web

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/setupassistant/internal/plan"
	"github.com/louisbranch/setupassistant/internal/ui/i18n"
	"golang.org/x/text/language"
)

const (
	htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4"
	sldsStyleURL  = "https://unpkg.com/@salesforce-ux/design-system@2.24.2/assets/styles/salesforce-lightning-design-system.min.css"
)

// pageLayout wraps body in the full HTML document.
func pageLayout(title string, lang language.Tag, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="` + templ.EscapeString(lang.String()) + `"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(title) + `</title>` +
			`<link rel="stylesheet" href="` + sldsStyleURL + `">` +
			`<script src="` + htmxScriptURL + `"></script>` +
			`</head><body hx-boost="true"><main class="slds-p-around_large">`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// planIndex lists every plan with a link to its page.
func planIndex(plans []plan.Plan, loc i18n.Localizer) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := `<h1 class="slds-text-heading_large slds-m-bottom_medium">` + templ.EscapeString(i18n.T(loc, i18n.KeyPlansTitle)) + `</h1>`
		if len(plans) == 0 {
			out += `<p>` + templ.EscapeString(i18n.T(loc, i18n.KeyPlansEmpty)) + `</p>`
			_, err := io.WriteString(w, out)
			return err
		}
		out += `<ul class="slds-has-dividers_bottom-space">`
		for _, p := range plans {
			title := p.Title
			if title == "" {
				title = p.Name
			}
			out += `<li class="slds-item"><a href="` + templ.EscapeString(planPath(p.Name)) + `">` + templ.EscapeString(title) + `</a> ` +
				`<span class="slds-text-color_weak">` + templ.EscapeString(i18n.T(loc, i18n.KeyStepsCount, len(p.Steps))) + `</span></li>`
		}
		out += `</ul>`
		_, err := io.WriteString(w, out)
		return err
	})
}

// planFragment renders the plan's heading (outside card mode) and assistant.
func planFragment(p plan.Plan, assistant templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !p.Card && p.Title != "" {
			if _, err := io.WriteString(w, `<h1 class="slds-text-heading_medium slds-m-bottom_medium">`+templ.EscapeString(p.Title)+`</h1>`); err != nil {
				return err
			}
		}
		return assistant.Render(ctx, w)
	})
}

func planPath(name string) string {
	return "/plans/" + url.PathEscape(name)
}

func stepTogglePath(planName string, index int, assistantID string) string {
	return planPath(planName) + "/steps/" + strconv.Itoa(index) + "/toggle?" + assistantParam + "=" + url.QueryEscape(assistantID)
}

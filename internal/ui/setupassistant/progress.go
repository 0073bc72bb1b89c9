package setupassistant

import (
	"context"
	"io"
	"math"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/setupassistant/internal/ui/i18n"
)

// ProgressRing renders a circular progress indicator around Content.
type ProgressRing struct {
	// Value is a percentage, clamped to [0, 100].
	Value float64
	// Large selects the large ring used by setup assistant steps.
	Large bool
	// Content is rendered inside the ring.
	Content templ.Component
	// Label is the accessible name of the progress bar.
	Label string
}

// Render writes the ring markup.
func (p ProgressRing) Render(ctx context.Context, w io.Writer) error {
	value := clampPercent(p.Value)
	hw := newHTMLWriter(ctx, w)
	class := "slds-progress-ring"
	if p.Large {
		class += " slds-progress-ring_large"
	}
	if value >= 100 {
		class += " slds-progress-ring_complete"
	}
	hw.raw(`<div`)
	hw.attr("class", class)
	hw.raw(`><div class="slds-progress-ring__progress" role="progressbar" aria-valuemin="0" aria-valuemax="100"`)
	hw.attr("aria-valuenow", formatPercent(value))
	if p.Label != "" {
		hw.attr("aria-label", p.Label)
	}
	hw.raw(`><svg viewBox="-1 -1 2 2"><path class="slds-progress-ring__path"`)
	hw.attr("d", ringPath(value))
	hw.raw(`></path></svg></div><div class="slds-progress-ring__content">`)
	hw.component(p.Content)
	hw.raw(`</div></div>`)
	return hw.err
}

// ringPath draws the filled arc of a unit circle for value percent.
func ringPath(value float64) string {
	fill := clampPercent(value) / 100
	largeArc := "0"
	if fill > 0.5 {
		largeArc = "1"
	}
	x := formatCoord(math.Cos(2 * math.Pi * fill))
	y := formatCoord(math.Sin(2 * math.Pi * fill))
	return "M 1 0 A 1 1 0 " + largeArc + " 1 " + x + " " + y + " L 0 0"
}

func formatCoord(v float64) string {
	v = math.Round(v*10000) / 10000
	// Drop negative zero.
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

// ProgressBar renders the horizontal progress bar shown in a card header.
type ProgressBar struct {
	// Value is a percentage, clamped to [0, 100].
	Value float64
	// Label is shown above the bar.
	Label string
	// Localizer formats the completion summary. Nil uses the default language.
	Localizer i18n.Localizer
}

// Render writes the progress bar markup.
func (p ProgressBar) Render(ctx context.Context, w io.Writer) error {
	value := clampPercent(p.Value)
	percent := int(math.Round(value))
	summary := i18n.T(p.Localizer, i18n.KeyProgressPercent, percent)

	hw := newHTMLWriter(ctx, w)
	hw.raw(`<div class="slds-grid slds-grid_align-spread slds-p-bottom_x-small">`)
	hw.raw(`<span>`)
	hw.text(p.Label)
	hw.raw(`</span><span aria-hidden="true"><strong>`)
	hw.text(summary)
	hw.raw(`</strong></span></div>`)
	hw.raw(`<div class="slds-progress-bar slds-progress-bar_circular" role="progressbar" aria-valuemin="0" aria-valuemax="100"`)
	hw.attr("aria-valuenow", strconv.Itoa(percent))
	if p.Label != "" {
		hw.attr("aria-label", p.Label)
	}
	hw.raw(`><span class="slds-progress-bar__value"`)
	hw.attr("style", "width:"+strconv.Itoa(percent)+"%")
	hw.raw(`><span class="slds-assistive-text">`)
	hw.text(summary)
	hw.raw(`</span></span></div>`)
	return hw.err
}

package setupassistant

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/setupassistant/internal/ui/i18n"
)

// DefaultStep renders a step with setup assistant markup.
func DefaultStep(props StepProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderStep(ctx, w, props)
	})
}

func renderStep(ctx context.Context, w io.Writer, props StepProps) error {
	hw := newHTMLWriter(ctx, w)
	hw.raw(`<li class="slds-setup-assistant__item"`)
	hw.attr("id", props.Key)
	hw.raw(`><article class="slds-setup-assistant__step">`)
	if props.IsExpandable {
		writeExpandableStep(hw, props)
	} else {
		writeStepSummary(hw, props)
	}
	hw.raw(`</article></li>`)
	return hw.err
}

func writeExpandableStep(hw *htmlWriter, props StepProps) {
	open := props.Open()
	detailID := props.Key + "-summary-action"

	class := "slds-summary-detail"
	if open {
		class += " slds-is-open"
	}
	hw.raw(`<div`)
	hw.attr("class", class)
	hw.raw(`><button class="slds-button slds-button_icon slds-m-right_x-small" type="button"`)
	hw.attr("aria-controls", detailID)
	hw.attr("aria-expanded", strconv.FormatBool(open))
	label := toggleLabel(props, open)
	hw.attr("title", label)
	writeToggleRequest(hw, props, open)
	hw.raw(`><svg class="slds-button__icon slds-summary-detail__action-icon" aria-hidden="true"><use href="#switch"></use></svg><span class="slds-assistive-text">`)
	hw.text(label)
	hw.raw(`</span></button><div class="slds-container_fluid"><div class="slds-summary-detail__title">`)
	writeStepSummary(hw, props)
	hw.raw(`</div>`)
	if open {
		hw.raw(`<div class="slds-summary-detail__content"`)
		hw.attr("id", detailID)
		hw.raw(`><div class="slds-setup-assistant__step-detail">`)
		hw.component(props.ProgressIndicator)
		hw.raw(`</div></div>`)
	}
	hw.raw(`</div></div>`)
}

// writeToggleRequest adds htmx attributes that post the current open state
// and swap the step with the response.
func writeToggleRequest(hw *htmlWriter, props StepProps, open bool) {
	if props.ToggleURL == "" {
		return
	}
	vals, err := json.Marshal(map[string]string{"is_open": strconv.FormatBool(open)})
	if err != nil {
		hw.err = err
		return
	}
	hw.attr("hx-post", props.ToggleURL)
	hw.attr("hx-vals", string(vals))
	hw.attr("hx-target", "closest li")
	hw.attr("hx-swap", "outerHTML")
}

func toggleLabel(props StepProps, open bool) string {
	if props.AssistiveText != nil {
		if open && props.AssistiveText.CollapseStep != "" {
			return props.AssistiveText.CollapseStep
		}
		if props.AssistiveText.ExpandStep != "" {
			return props.AssistiveText.ExpandStep
		}
	}
	if open {
		return i18n.T(props.Localizer, i18n.KeyCollapseStep)
	}
	return i18n.T(props.Localizer, i18n.KeyExpandStep)
}

func writeStepSummary(hw *htmlWriter, props StepProps) {
	hw.raw(`<div class="slds-setup-assistant__step-summary"><div class="slds-media"><div class="slds-media__figure">`)
	hw.component(stepRing(props))
	hw.raw(`</div><div class="slds-media__body slds-m-top_x-small"><div class="slds-media"><div class="slds-setup-assistant__step-summary-content slds-media__body">`)
	hw.raw(`<h3 class="slds-setup-assistant__step-summary-title slds-text-heading_small">`)
	if props.IsExpandable {
		hw.raw(`<button class="slds-button slds-button_reset" type="button"`)
		hw.attr("aria-controls", props.Key+"-summary-action")
		hw.attr("aria-expanded", strconv.FormatBool(props.Open()))
		writeToggleRequest(hw, props, props.Open())
		hw.raw(`>`)
		hw.component(props.Heading)
		hw.raw(`</button>`)
	} else {
		hw.component(props.Heading)
	}
	hw.raw(`</h3>`)
	if props.Description != nil {
		hw.raw(`<p>`)
		hw.component(props.Description)
		hw.raw(`</p>`)
	}
	hw.raw(`</div><div class="slds-media__figure slds-media__figure_reverse">`)
	hw.component(props.Action)
	if props.EstimatedTime != nil {
		hw.raw(`<p class="slds-text-align_right slds-text-color_weak slds-p-top_medium">`)
		hw.component(props.EstimatedTime)
		hw.raw(`</p>`)
	}
	hw.raw(`</div></div></div></div>`)
	hw.component(props.ScopedNotification)
	hw.raw(`</div>`)
}

func stepRing(props StepProps) templ.Component {
	var value float64
	if props.Progress != nil {
		value = *props.Progress
	}
	ring := ProgressRing{
		Value: value,
		Large: true,
		Label: i18n.T(props.Localizer, i18n.KeyStepNumber, props.StepNumber),
	}
	if clampPercent(value) >= 100 {
		ring.Content = templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, `<span class="slds-icon_container" title="`+
				templ.EscapeString(i18n.T(props.Localizer, i18n.KeyStepComplete, props.StepNumber))+
				`"><svg class="slds-icon" aria-hidden="true"><use href="#check"></use></svg></span>`)
			return err
		})
		return ring
	}
	ring.Content = Text(strconv.Itoa(props.StepNumber))
	return ring
}

package plan

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/setupassistant/internal/ui/classlist"
	"github.com/louisbranch/setupassistant/internal/ui/i18n"
	"github.com/louisbranch/setupassistant/internal/ui/setupassistant"
)

// PropsOptions carries request-scoped values into Props.
type PropsOptions struct {
	// ID overrides the generated list id.
	ID                 string
	Localizer          i18n.Localizer
	OnStepToggleIsOpen setupassistant.ToggleFunc
}

// Props converts p into setup assistant props.
func (p Plan) Props(opts PropsOptions) setupassistant.Props {
	props := setupassistant.Props{
		ID:                 opts.ID,
		IsCard:             p.Card,
		OnStepToggleIsOpen: opts.OnStepToggleIsOpen,
		Steps:              make([]setupassistant.Step, 0, len(p.Steps)),
	}
	if p.Class != "" {
		props.ClassName = classlist.String(p.Class)
	}
	if p.Card {
		props.ProgressBar = setupassistant.ProgressBar{
			Value:     p.Progress,
			Label:     p.Title,
			Localizer: opts.Localizer,
		}
	}
	for _, step := range p.Steps {
		props.Steps = append(props.Steps, step.descriptor())
	}
	return props
}

func (s Step) descriptor() setupassistant.Step {
	out := setupassistant.Step{
		Heading:      setupassistant.Text(s.Heading),
		IsExpandable: s.Expandable,
		IsOpen:       s.Open,
		Progress:     s.Progress,
	}
	if s.Description != "" {
		out.Description = setupassistant.Text(s.Description)
	}
	if s.EstimatedTime != "" {
		out.EstimatedTime = setupassistant.Text(s.EstimatedTime)
	}
	if s.Action != nil {
		out.Action = actionLink(*s.Action)
	}
	if s.Notification != "" {
		out.ScopedNotification = scopedNotification(s.Notification)
	}
	if len(s.Substeps) > 0 {
		out.ProgressIndicator = substepList(s.Substeps)
	}
	return out
}

func actionLink(action Action) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		href := action.Href
		if href == "" {
			href = "#"
		}
		_, err := io.WriteString(w, `<a class="slds-button slds-button_neutral" href="`+
			templ.EscapeString(string(templ.URL(href)))+`">`+templ.EscapeString(action.Label)+`</a>`)
		return err
	})
}

func scopedNotification(message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="slds-scoped-notification slds-media slds-media_center slds-scoped-notification_light" role="status"><div class="slds-media__body"><p>`+
			templ.EscapeString(message)+`</p></div></div>`)
		return err
	})
}

func substepList(substeps []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="slds-progress slds-progress_vertical"><ol class="slds-progress__list">`); err != nil {
			return err
		}
		for _, substep := range substeps {
			if _, err := io.WriteString(w, `<li class="slds-progress__item"><div class="slds-progress__marker"></div><div class="slds-progress__item_content">`+
				templ.EscapeString(substep)+`</div></li>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ol></div>`)
		return err
	})
}

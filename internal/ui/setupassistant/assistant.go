// Package setupassistant renders the setup assistant: an ordered list of
// onboarding steps, optionally wrapped in a card with a progress header.
package setupassistant

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/a-h/templ"
	"github.com/louisbranch/setupassistant/internal/platform/id"
	"github.com/louisbranch/setupassistant/internal/ui/classlist"
	"github.com/louisbranch/setupassistant/internal/ui/i18n"
)

// BaseClass marks the root step list.
const BaseClass = "slds-setup-assistant"

// Assistant renders a setup assistant. The effective id is resolved once and
// reused for every render of the same Assistant.
type Assistant struct {
	props     Props
	renderer  StepRenderer
	toggleURL func(index int) string
	loc       i18n.Localizer
	id        func() (string, error)
}

// Option customizes an Assistant.
type Option func(*Assistant)

// WithIDGenerator replaces the fallback id generator.
func WithIDGenerator(generate id.Generator) Option {
	return func(a *Assistant) {
		if generate != nil {
			a.id = sync.OnceValues((func() (string, error))(generate))
		}
	}
}

// WithStepRenderer replaces the default step renderer.
func WithStepRenderer(renderer StepRenderer) Option {
	return func(a *Assistant) {
		if renderer != nil {
			a.renderer = renderer
		}
	}
}

// WithToggleURL sets the endpoint expandable steps post to when toggled.
func WithToggleURL(url func(index int) string) Option {
	return func(a *Assistant) {
		a.toggleURL = url
	}
}

// WithLocalizer sets the localizer forwarded to steps.
func WithLocalizer(loc i18n.Localizer) Option {
	return func(a *Assistant) {
		a.loc = loc
	}
}

// New builds an Assistant for props.
func New(props Props, opts ...Option) *Assistant {
	a := &Assistant{
		props:    props,
		renderer: DefaultStep,
		id:       sync.OnceValues(id.NewShortID),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if props.ID != "" {
		explicit := props.ID
		a.id = func() (string, error) { return explicit, nil }
	}
	return a
}

// Props returns the props the assistant was built with.
func (a *Assistant) Props() Props {
	return a.props
}

// ID returns the effective id: the explicit id when set, otherwise the
// generated fallback. It returns an empty string if generation failed.
func (a *Assistant) ID() string {
	effectiveID, err := a.id()
	if err != nil {
		return ""
	}
	return effectiveID
}

func (a *Assistant) resolveID() (string, error) {
	effectiveID, err := a.id()
	if err != nil {
		return "", fmt.Errorf("generate setup assistant id: %w", err)
	}
	return effectiveID, nil
}

// StepKey returns the stable key of the step at index.
func StepKey(assistantID string, index int) string {
	return assistantID + "-step-" + strconv.Itoa(index)
}

// StepProps returns the props forwarded to the renderer for the step at
// index.
func (a *Assistant) StepProps(index int) (StepProps, error) {
	if index < 0 || index >= len(a.props.Steps) {
		return StepProps{}, fmt.Errorf("%w: index %d", ErrStepNotFound, index)
	}
	effectiveID, err := a.resolveID()
	if err != nil {
		return StepProps{}, err
	}
	return a.stepProps(effectiveID, index), nil
}

func (a *Assistant) stepProps(effectiveID string, index int) StepProps {
	props := StepProps{
		Step:           a.props.Steps[index],
		AssistiveText:  a.props.AssistiveText,
		Index:          index,
		Key:            StepKey(effectiveID, index),
		OnToggleIsOpen: a.props.OnStepToggleIsOpen,
		StepNumber:     index + 1,
		Localizer:      a.loc,
	}
	if a.toggleURL != nil {
		props.ToggleURL = a.toggleURL(index)
	}
	return props
}

// Toggle flips the open state of the expandable step at index. currentOpen is
// the state the client rendered. The toggle callback, when set, receives the
// state before the flip; the returned props carry the new state.
func (a *Assistant) Toggle(r *http.Request, index int, currentOpen bool) (StepProps, error) {
	props, err := a.StepProps(index)
	if err != nil {
		return StepProps{}, err
	}
	if !props.IsExpandable {
		return StepProps{}, fmt.Errorf("%w: index %d", ErrStepNotExpandable, index)
	}
	if props.OnToggleIsOpen != nil {
		props.OnToggleIsOpen(r, StepToggle{Index: index, IsOpen: currentOpen, Step: a.props.Steps[index]})
	}
	props.IsOpen = Bool(!currentOpen)
	return props, nil
}

// StepComponent renders one step with the assistant's renderer.
func (a *Assistant) StepComponent(props StepProps) templ.Component {
	return a.renderer(props)
}

// Render writes the step list, wrapped in a card when IsCard is set.
func (a *Assistant) Render(ctx context.Context, w io.Writer) error {
	effectiveID, err := a.resolveID()
	if err != nil {
		return err
	}
	hw := newHTMLWriter(ctx, w)
	if a.props.IsCard {
		hw.raw(`<section class="slds-card"><header class="slds-theme_shade slds-p-around_medium slds-m-bottom_small">`)
		hw.component(a.props.ProgressBar)
		hw.raw(`</header>`)
	}
	hw.raw(`<ol`)
	hw.attr("id", effectiveID)
	hw.attr("class", classlist.Join(BaseClass, a.props.ClassName))
	hw.raw(`>`)
	for i := range a.props.Steps {
		hw.component(a.renderer(a.stepProps(effectiveID, i)))
	}
	hw.raw(`</ol>`)
	if a.props.IsCard {
		hw.raw(`</section>`)
	}
	return hw.err
}

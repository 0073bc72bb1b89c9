package setupassistant

import (
	"net/http"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/setupassistant/internal/platform/errors"
	"github.com/louisbranch/setupassistant/internal/ui/classlist"
	"github.com/louisbranch/setupassistant/internal/ui/i18n"
)

var (
	// ErrStepsRequired reports props built without a steps sequence.
	ErrStepsRequired = apperrors.New(apperrors.CodeStepsRequired, "setup assistant steps are required")
	// ErrStepNotFound reports a step index outside the steps sequence.
	ErrStepNotFound = apperrors.New(apperrors.CodeStepNotFound, "setup assistant step not found")
	// ErrStepNotExpandable reports a toggle on a step that cannot expand.
	ErrStepNotExpandable = apperrors.New(apperrors.CodeStepNotExpandable, "setup assistant step is not expandable")
)

// Step describes one onboarding task.
type Step struct {
	// Action displays the step's available actions, typically a button,
	// link or toggle.
	Action templ.Component
	// Description is the descriptive content for the step.
	Description templ.Component
	// EstimatedTime is the estimated time for completing the step.
	EstimatedTime templ.Component
	// Heading is the step's heading content.
	Heading templ.Component
	// IsExpandable dictates whether the step can be expanded and collapsed.
	IsExpandable bool
	// IsOpen controls the opened state of an expandable step. Nil leaves the
	// state to the step renderer.
	IsOpen *bool
	// Progress is the step's completion percentage.
	Progress *float64
	// ProgressIndicator shows sub-steps while the step is open.
	ProgressIndicator templ.Component
	// ScopedNotification displays issues or warnings for the step.
	ScopedNotification templ.Component
}

// AssistiveText holds screen reader copy shared by every step.
type AssistiveText struct {
	ExpandStep   string
	CollapseStep string
}

// StepToggle is passed to ToggleFunc when a step is opened or closed.
type StepToggle struct {
	Index int
	// IsOpen is the open state before the toggle.
	IsOpen bool
	Step   Step
}

// ToggleFunc handles opening and closing of expandable steps.
type ToggleFunc func(r *http.Request, toggle StepToggle)

// Props configures a setup assistant.
type Props struct {
	// ID is the HTML id of the step list. A short id is generated when empty.
	ID string
	// ClassName adds CSS classes to the step list.
	ClassName classlist.Value
	// IsCard wraps the list in a card with a header.
	IsCard bool
	// ProgressBar is rendered in the card header and only when IsCard is set.
	ProgressBar templ.Component
	// OnStepToggleIsOpen is invoked when an expandable step is toggled.
	OnStepToggleIsOpen ToggleFunc
	// AssistiveText is forwarded to every step.
	AssistiveText *AssistiveText
	// Steps is the ordered list of steps. Required.
	Steps []Step
}

// Validate reports contract violations in p. It never fails on content.
func (p Props) Validate() error {
	if p.Steps == nil {
		return ErrStepsRequired
	}
	return nil
}

// StepProps is everything a step renderer receives for one step.
type StepProps struct {
	Step
	AssistiveText  *AssistiveText
	Index          int
	Key            string
	OnToggleIsOpen ToggleFunc
	StepNumber     int
	// ToggleURL is the endpoint an expandable step posts to. Empty disables
	// server round trips.
	ToggleURL string
	Localizer i18n.Localizer
}

// Open reports whether the step renders expanded.
func (p StepProps) Open() bool {
	return p.IsExpandable && p.IsOpen != nil && *p.IsOpen
}

// StepRenderer renders one step.
type StepRenderer func(StepProps) templ.Component

// Bool returns a pointer to v, for Step.IsOpen.
func Bool(v bool) *bool {
	return &v
}

// Percent returns a pointer to v, for Step.Progress.
func Percent(v float64) *float64 {
	return &v
}

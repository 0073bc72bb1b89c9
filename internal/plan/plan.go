// Package plan loads onboarding plans from YAML and converts them into setup
// assistant props.
package plan

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/setupassistant/internal/platform/errors"
	"gopkg.in/yaml.v3"
)

// ErrPlanNotFound reports a lookup for a plan name that is not loaded.
var ErrPlanNotFound = apperrors.New(apperrors.CodePlanNotFound, "plan not found")

//go:embed plans/*.yaml
var embeddedPlans embed.FS

// Plan is one onboarding checklist.
type Plan struct {
	Name     string  `yaml:"name"`
	Title    string  `yaml:"title"`
	Card     bool    `yaml:"card"`
	Progress float64 `yaml:"progress"`
	Class    string  `yaml:"class"`
	Steps    []Step  `yaml:"steps"`
}

// Step is one onboarding task in a plan file.
type Step struct {
	Heading       string   `yaml:"heading"`
	Description   string   `yaml:"description"`
	EstimatedTime string   `yaml:"estimated_time"`
	Expandable    bool     `yaml:"expandable"`
	Open          *bool    `yaml:"open"`
	Progress      *float64 `yaml:"progress"`
	Action        *Action  `yaml:"action"`
	Notification  string   `yaml:"notification"`
	Substeps      []string `yaml:"substeps"`
}

// Action is the link shown beside a step.
type Action struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Catalog holds plans by name.
type Catalog struct {
	plans map[string]Plan
}

// LoadEmbedded loads the plans bundled with the binary.
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedPlans, "plans")
}

// Load loads the embedded plans and, when dir is set, overlays the plans in
// dir. A plan in dir replaces an embedded plan of the same name.
func Load(dir string) (*Catalog, error) {
	catalog, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return catalog, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("load plans from %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("load plans from %s: not a directory", dir)
	}
	overlay, err := LoadFromFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, fmt.Errorf("load plans from %s: %w", dir, err)
	}
	for name, p := range overlay.plans {
		catalog.plans[name] = p
	}
	return catalog, nil
}

// LoadFromFS loads every *.yaml file under root in fsys.
func LoadFromFS(fsys fs.FS, root string) (*Catalog, error) {
	paths, err := fs.Glob(fsys, path.Join(root, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob plans: %w", err)
	}
	sort.Strings(paths)

	catalog := &Catalog{plans: make(map[string]Plan, len(paths))}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read plan %s: %w", p, err)
		}
		parsed, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse plan %s: %w", p, err)
		}
		if _, exists := catalog.plans[parsed.Name]; exists {
			return nil, fmt.Errorf("plan %s: name %q already defined", p, parsed.Name)
		}
		catalog.plans[parsed.Name] = parsed
	}
	return catalog, nil
}

// Parse decodes and validates one plan document.
func Parse(data []byte) (Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, apperrors.Wrap(apperrors.CodePlanInvalid, "decode yaml", err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, apperrors.Wrap(apperrors.CodePlanInvalid, "invalid plan", err)
	}
	return p, nil
}

// Validate checks the shape of p.
func (p Plan) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errors.New("name is required")
	}
	if name != p.Name || strings.ContainsAny(name, "/ ") {
		return fmt.Errorf("name %q must be a single path segment", p.Name)
	}
	if len(p.Steps) == 0 {
		return errors.New("at least one step is required")
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("progress %v must be between 0 and 100", p.Progress)
	}
	for i, step := range p.Steps {
		if strings.TrimSpace(step.Heading) == "" {
			return fmt.Errorf("step %d: heading is required", i+1)
		}
		if step.Progress != nil && (*step.Progress < 0 || *step.Progress > 100) {
			return fmt.Errorf("step %d: progress %v must be between 0 and 100", i+1, *step.Progress)
		}
		if step.Action != nil && strings.TrimSpace(step.Action.Label) == "" {
			return fmt.Errorf("step %d: action label is required", i+1)
		}
	}
	return nil
}

// Get returns the plan named name.
func (c *Catalog) Get(name string) (Plan, error) {
	if c == nil {
		return Plan{}, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	p, ok := c.plans[strings.TrimSpace(name)]
	if !ok {
		return Plan{}, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	return p, nil
}

// Plans returns every plan sorted by name.
func (c *Catalog) Plans() []Plan {
	if c == nil {
		return nil
	}
	out := make([]Plan, 0, len(c.plans))
	for _, p := range c.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

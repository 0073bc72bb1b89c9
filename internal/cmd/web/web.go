// Package web builds the setupassistant command line: the HTTP service and a
// one-shot HTML renderer for onboarding plans.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/louisbranch/setupassistant/internal/plan"
	platformcmd "github.com/louisbranch/setupassistant/internal/platform/cmd"
	"github.com/louisbranch/setupassistant/internal/services/web"
	"github.com/louisbranch/setupassistant/internal/ui/i18n"
	"github.com/louisbranch/setupassistant/internal/ui/setupassistant"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// Config holds the command configuration. Fields are read from
// SETUP_ASSISTANT_* environment variables and overridden by flags.
type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:"localhost:8086"`
	PlansDir      string `env:"PLANS_DIR"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en-US"`
}

// RenderOptions selects what the render command writes.
type RenderOptions struct {
	Plan string
	// ID fixes the step list id; empty generates one.
	ID   string
	Card bool
}

// ParseConfig loads environment defaults.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewRootCommand builds the setupassistant command tree. Output of the
// render command goes to out.
func NewRootCommand(cfg Config, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "setupassistant",
		Short:         "Serve and render onboarding setup assistants",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.PlansDir, "plans-dir", cfg.PlansDir, "Directory of plan YAML files overlaid on the bundled plans")
	root.PersistentFlags().StringVar(&cfg.DefaultLocale, "locale", cfg.DefaultLocale, "Default language tag")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the setup assistant HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), cfg)
		},
	}
	serve.Flags().StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")

	var opts RenderOptions
	render := &cobra.Command{
		Use:   "render",
		Short: "Render a plan's setup assistant HTML to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Render(cmd.Context(), out, cfg, opts)
		},
	}
	render.Flags().StringVar(&opts.Plan, "plan", "", "Plan name")
	render.Flags().StringVar(&opts.ID, "id", "", "Step list id (generated when empty)")
	render.Flags().BoolVar(&opts.Card, "card", false, "Force the card layout")
	_ = render.MarkFlagRequired("plan")

	root.AddCommand(serve, render)
	return root
}

// Run starts the web server under telemetry until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	catalog, err := plan.Load(cfg.PlansDir)
	if err != nil {
		return fmt.Errorf("load plans: %w", err)
	}
	tag, err := parseLocale(cfg.DefaultLocale)
	if err != nil {
		return err
	}
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(web.Config{
			HTTPAddr:        cfg.HTTPAddr,
			Catalog:         catalog,
			DefaultLanguage: tag,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		log.Printf("serving %d plans on %s", len(catalog.Plans()), server.Addr())
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

// Render writes the setup assistant for opts.Plan to out.
func Render(ctx context.Context, out io.Writer, cfg Config, opts RenderOptions) error {
	if strings.TrimSpace(opts.Plan) == "" {
		return errors.New("plan name is required")
	}
	catalog, err := plan.Load(cfg.PlansDir)
	if err != nil {
		return fmt.Errorf("load plans: %w", err)
	}
	p, err := catalog.Get(opts.Plan)
	if err != nil {
		return err
	}
	if opts.Card {
		p.Card = true
	}
	tag, err := parseLocale(cfg.DefaultLocale)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	loc := i18n.Printer(tag)
	props := p.Props(plan.PropsOptions{ID: strings.TrimSpace(opts.ID), Localizer: loc})
	if err := setupassistant.New(props, setupassistant.WithLocalizer(loc)).Render(ctx, out); err != nil {
		return fmt.Errorf("render plan %s: %w", p.Name, err)
	}
	_, err = io.WriteString(out, "\n")
	return err
}

func parseLocale(value string) (language.Tag, error) {
	if strings.TrimSpace(value) == "" {
		return i18n.DefaultTag(), nil
	}
	tag, ok := i18n.ParseTag(value)
	if !ok {
		return language.Und, fmt.Errorf("unsupported locale %q (supported: %s)", value, supportedLocales())
	}
	return tag, nil
}

func supportedLocales() string {
	tags := i18n.SupportedTags()
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.String())
	}
	return strings.Join(names, ", ")
}

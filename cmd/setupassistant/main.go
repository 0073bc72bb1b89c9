// Package main runs the setupassistant command: the browser-facing onboarding
// service and a one-shot plan renderer.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	webcmd "github.com/louisbranch/setupassistant/internal/cmd/web"
	"github.com/louisbranch/setupassistant/internal/platform/config"
)

func main() {
	cfg, err := webcmd.ParseConfig()
	config.ExitOnError(err, "parse config")
	log.SetPrefix("[SETUP] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := webcmd.NewRootCommand(cfg, os.Stdout).ExecuteContext(ctx); err != nil {
		log.Fatalf("setupassistant: %v", err)
	}
}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nattoujam/tcurl/internal/config"
	"github.com/nattoujam/tcurl/internal/httpclient"
	"github.com/nattoujam/tcurl/internal/store"
	"github.com/nattoujam/tcurl/internal/theme"
	"github.com/nattoujam/tcurl/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	var (
		requestsDir string
		timeout     time.Duration
		showVersion bool
	)

	flag.StringVar(&requestsDir, "dir", "", "Directory holding request definitions")
	flag.DurationVar(&timeout, "timeout", 0, "Request timeout (overrides config)")
	flag.BoolVar(&showVersion, "version", false, "Show tcurl version")
	flag.Parse()

	if showVersion {
		fmt.Printf("tcurl %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if err := config.EnsureDefault(config.Dir()); err != nil {
		log.Printf("config init: %v", err)
	}

	cfg, _, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if requestsDir == "" {
		requestsDir = config.RequestsDir()
	} else if abs, absErr := filepath.Abs(requestsDir); absErr == nil {
		requestsDir = abs
	}

	st := store.New(requestsDir)
	if err := st.Ensure(); err != nil {
		log.Fatalf("prepare requests dir %s: %v", st.Dir(), err)
	}

	if timeout <= 0 {
		timeout = cfg.Timeout()
	}

	if !slices.Contains(theme.Names(), cfg.UI.Theme) {
		log.Printf(
			"unknown theme %q, using default (themes: %s)",
			cfg.UI.Theme,
			strings.Join(theme.Names(), ", "),
		)
	}

	model := ui.New(ui.Config{
		Store:  st,
		Client: httpclient.NewClient(),
		HTTPOptions: httpclient.Options{
			Timeout:         timeout,
			FollowRedirects: true,
		},
		Theme:     theme.New(cfg.UI.Theme),
		EditorCmd: cfg.Editor,
		Version:   version,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

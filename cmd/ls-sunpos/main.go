// Command ls-sunpos is a terminal UI and CLI for tracking the apparent
// position of the Sun from a ground site.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-sunpos/internal/config"
	"github.com/litescript/ls-sunpos/internal/logging"
	"github.com/litescript/ls-sunpos/internal/track"
	"github.com/litescript/ls-sunpos/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	nowMode       bool
	skyMode       bool
	jsonPath      string
	atInstant     string
	watchInterval time.Duration
)

const (
	minRefresh = 1 * time.Second
	maxRefresh = 10 * time.Minute

	traceRecompute = 10 * time.Minute
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search standard locations)")
	siteKey := flag.String("site", "", "Observer site by name (e.g., tokyo, greenwich)")
	lat := flag.Float64("lat", 0, "Observer latitude in degrees (overrides site)")
	lon := flag.Float64("lon", 0, "Observer longitude in degrees (overrides site)")
	refresh := flag.Duration("refresh", 0, "Position refresh interval (e.g., 30s, 1m)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to file instead of stderr")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.BoolVar(&nowMode, "now", false, "Single-line position readout")
	flag.BoolVar(&skyMode, "sky", false, "Print ASCII sky arc instead of TUI")
	flag.StringVar(&jsonPath, "json", "", "Export JSON snapshot to file (use - for stdout)")
	flag.StringVar(&atInstant, "at", "", "Compute for a specific instant (RFC 3339) instead of now")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 30s)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override file values
	var latSet, lonSet bool
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			latSet = true
		case "lon":
			lonSet = true
		}
	})
	if *siteKey != "" {
		site, err := config.SiteByKey(*siteKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Site = site
	}
	if latSet || lonSet {
		if latSet {
			cfg.Site.Latitude = *lat
		}
		if lonSet {
			cfg.Site.Longitude = *lon
		}
		cfg.Site.Name = fmt.Sprintf("%.4f°, %.4f°", cfg.Site.Latitude, cfg.Site.Longitude)
	}
	if *refresh != 0 {
		cfg.Refresh = config.Duration(*refresh)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}
	cfg.Normalize()

	interval := time.Duration(cfg.Refresh)
	if interval < minRefresh {
		interval = minRefresh
	} else if interval > maxRefresh {
		interval = maxRefresh
	}

	logger := logging.New(logging.ParseLevel(cfg.Logging.Level))
	if cfg.Logging.File != "" {
		logger = logging.NewFile(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.File)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	trackCfg := track.DefaultConfig()
	trackCfg.RefreshInterval = interval
	mgr := track.NewManager(cfg.Site, trackCfg)

	// A fixed -at instant is inherently a one-shot query, so it implies
	// headless output.
	headless := summaryMode || nowMode || skyMode || jsonPath != "" || atInstant != ""
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Warn("stdout is not a terminal, falling back to summary output")
		summaryMode = true
		headless = true
	}
	if headless {
		runHeadless(ctx, mgr, logger)
		return
	}

	model := ui.New(mgr, cfg.Sky)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go runComputeLoop(ctx, mgr, p, logger)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runComputeLoop recomputes the solar position on the refresh interval and
// the sun trace on a slower cadence, pushing both to the TUI.
func runComputeLoop(ctx context.Context, mgr *track.Manager, p *tea.Program, logger *logging.Logger) {
	recompute := func() {
		if err := mgr.Recompute(time.Now()); err != nil {
			logger.Error("Position update failed: %v", err)
			p.Send(ui.ErrorMsg{Error: err})
			return
		}
		p.Send(ui.DataUpdateMsg{Snapshot: mgr.Snapshot()})
	}
	retrace := func() {
		trace, err := track.ComputeSunTrace(mgr.Site(), time.Now(), track.TraceWindow, track.TraceSampleInterval)
		if err != nil {
			logger.Error("Trace update failed: %v", err)
			return
		}
		p.Send(ui.TraceUpdateMsg{Trace: trace})
	}

	recompute()
	retrace()

	posTicker := time.NewTicker(mgr.RefreshInterval())
	defer posTicker.Stop()
	traceTicker := time.NewTicker(traceRecompute)
	defer traceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Compute loop shutting down")
			return
		case <-posTicker.C:
			recompute()
		case <-traceTicker.C:
			retrace()
		}
	}
}

// runHeadless handles all non-TUI output modes.
func runHeadless(ctx context.Context, mgr *track.Manager, logger *logging.Logger) {
	instant := func() time.Time { return time.Now() }
	if atInstant != "" {
		at, err := time.Parse(time.RFC3339, atInstant)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -at instant %q: %v\n", atInstant, err)
			os.Exit(1)
		}
		instant = func() time.Time { return at }
	}

	outputOnce := func() error {
		now := instant()
		if err := mgr.Recompute(now); err != nil {
			return err
		}
		snap := mgr.Snapshot()

		trace, err := track.ComputeSunTrace(mgr.Site(), now, track.TraceWindow, track.TraceSampleInterval)
		if err != nil {
			logger.Warn("Trace computation failed: %v", err)
		}

		if nowMode {
			track.WriteNowLine(os.Stdout, snap)
			return nil
		}

		if jsonPath != "" {
			export := track.ExportSnapshot(snap, trace)
			if jsonPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(jsonPath)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if summaryMode || (jsonPath == "" && !nowMode && !skyMode) {
			track.WriteSummary(os.Stdout, snap, trace)
		}

		if skyMode {
			if summaryMode {
				fmt.Println()
			}
			track.WriteSkyArc(os.Stdout, snap, trace)
		}
		return nil
	}

	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !nowMode {
				fmt.Println()
			}
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

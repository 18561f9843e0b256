// Command ls-orrery is a terminal orrery: planets, moons and periodic comets
// orbiting the sun, rendered in 3D.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
)

// CLI flags
var (
	fps          int
	seed         uint64
	bodiesPath   string
	logLevel     string
	logFile      string
	metricsAddr  string
	headlessMode bool
	frameCount   int
	snapshotPath string
	summaryMode  bool
	cometSpeed   float64
	trailLength  int
)

const (
	minFPS = 10
	maxFPS = 120
)

func main() {
	flag.IntVar(&fps, "fps", 60, "Render rate in frames per second")
	flag.Uint64Var(&seed, "seed", 0, "Seed for initial orbit phases and the star field (0 = random)")
	flag.StringVar(&bodiesPath, "bodies", "", "YAML orbit table to load instead of the built-in one")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Append logs to file (the TUI discards them otherwise)")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flag.BoolVar(&headlessMode, "headless", false, "Run the simulation without the TUI")
	flag.IntVar(&frameCount, "frames", 600, "Steps to simulate in headless mode")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.Float64Var(&cometSpeed, "comet-speed", 1.0, "Comet speed multiplier (0.1-3.0)")
	flag.IntVar(&trailLength, "trail-length", 0, "Override every comet trail length (10-100, 0 keeps per-comet lengths)")
	flag.Parse()

	fps = max(minFPS, min(maxFPS, fps))

	headless := headlessMode || summaryMode || snapshotPath != "" || !term.IsTerminal(int(os.Stdout.Fd()))

	logger, closeLog, err := openLogger(headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, headless, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// openLogger writes to stderr in headless mode. The TUI owns the terminal, so
// it only logs when a file is given.
func openLogger(headless bool) (*logging.Logger, func(), error) {
	level := logging.ParseLevel(logLevel)
	if logFile != "" {
		l, f, err := logging.OpenFile(level, logFile)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { _ = f.Close() }, nil
	}
	if headless {
		return logging.New(level), func() {}, nil
	}
	return logging.NewWithOutput(level, io.Discard), func() {}, nil
}

func run(ctx context.Context, headless bool, logger *logging.Logger) error {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug("seed %d", seed)

	table := orbit.DefaultTable()
	if bodiesPath != "" {
		t, err := orbit.LoadTableFile(bodiesPath)
		if err != nil {
			return err
		}
		table = t
	}

	ctl := orbit.DefaultControls()
	ctl.CometSpeed = cometSpeed
	ctl.Clamp()

	sys, err := orbit.Build(orbit.Config{
		Table:    table,
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		Controls: &ctl,
		Logger:   logger.With("orbit"),
	})
	if err != nil {
		return err
	}
	if trailLength != 0 {
		sys.SetTrailLength(trailLength)
	}

	stateMgr := state.NewManager(state.DefaultConfig())
	collector := metrics.NewCollector(stateMgr)

	if headless {
		return runHeadless(os.Stdout, sys, headlessOptions{
			Frames:       frameCount,
			SnapshotPath: snapshotPath,
			Summary:      summaryMode,
		}, stateMgr, collector, logger)
	}

	model, err := ui.New(ui.Options{
		System:  sys,
		State:   stateMgr,
		Metrics: collector,
		Logger:  logger,
		Stars:   astro.DefaultStarField(rand.New(rand.NewPCG(seed>>1, seed))),
		FPS:     fps,
	})
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())

	g, gctx := errgroup.WithContext(ctx)
	if metricsAddr != "" {
		g.Go(func() error {
			logger.Info("serving metrics on %s", metricsAddr)
			if err := collector.Serve(gctx, metricsAddr); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}
	tuiCtx, tuiDone := context.WithCancel(gctx)
	g.Go(func() error {
		defer tuiDone()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running TUI: %w", err)
		}
		return nil
	})
	// Quit the TUI on signal or metrics failure; stop the server when the TUI exits.
	g.Go(func() error {
		<-tuiCtx.Done()
		p.Quit()
		return context.Canceled
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// headlessOptions selects what a headless run simulates and prints.
type headlessOptions struct {
	Frames       int
	SnapshotPath string // "-" writes JSON to out
	Summary      bool
}

// runHeadless steps the simulation opts.Frames times and writes the results
// to out.
func runHeadless(out io.Writer, sys *orbit.System, opts headlessOptions, stateMgr *state.Manager, collector *metrics.Collector, logger *logging.Logger) error {
	start := time.Now()
	for i := 0; i < opts.Frames; i++ {
		sys.Step()
	}
	elapsed := time.Since(start)
	if collector != nil {
		collector.RecordSteps(opts.Frames, elapsed)
	}
	if stateMgr != nil {
		stateMgr.Update(*sys.Controls(), sys.Frames(), elapsed, sys.Bodies())
	}
	logger.Info("simulated %d steps in %v", opts.Frames, elapsed.Round(time.Microsecond))

	now := time.Now()

	// Export JSON if requested
	if opts.SnapshotPath != "" {
		export := orbit.ExportSnapshot(sys, now)
		if opts.SnapshotPath == "-" {
			if err := export.WriteJSON(out); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(opts.SnapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	// Print summary table when requested or when nothing else was asked for
	if opts.Summary || opts.SnapshotPath == "" {
		orbit.WriteSummaryTable(out, sys, now)
	}
	return nil
}

package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/volleyping/volley/core"
)

// runnerOptions configure the outer measurement loop around the engine.
type runnerOptions struct {
	volleyInterval  time.Duration
	printer         printer
	graph           bool
	graphWidth      int
	graphHeight     int
	graphMaxLatency time.Duration
}

// Runner drives volleys against every target in a round-robin loop until
// interrupted. The engine itself has no abort path mid-volley, so signals
// only take effect between volleys.
type Runner struct {
	targets  []string
	settings *core.Settings
	opts     *runnerOptions
	sigch    chan os.Signal
	stop     chan struct{}

	// measure is swapped out in tests to avoid raw sockets.
	measure func(*net.IPAddr, *core.Settings) (*core.Report, error)
}

// newRunner creates a runner over the given targets.
func newRunner(targets []string, settings *core.Settings, opts *runnerOptions) *Runner {
	return &Runner{
		targets:  targets,
		settings: settings,
		opts:     opts,
		sigch:    make(chan os.Signal, 1),
		stop:     make(chan struct{}),
		measure:  core.MeasureVolley,
	}
}

// Run loops over all targets, measuring one volley per target per round,
// pacing rounds at the configured volley interval. It returns when a
// SIGINT/SIGTERM arrives or when a target cannot be resolved up front.
func (r *Runner) Run() error {
	// fail early before the first volley if any target is bogus
	for _, target := range r.targets {
		if _, err := resolveTarget(target); err != nil {
			return err
		}
	}

	r.handleSignals()
	r.opts.printer.header()

	next := time.Now()
	for {
		for _, target := range r.targets {
			if r.stopped() {
				return nil
			}

			// re-resolve each round so DNS changes are picked up
			addr, err := resolveTarget(target)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}

			start := time.Now()
			report, err := r.measure(addr, r.settings)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to measure volley: %s\n", err)
				continue
			}

			sum := summarize(report, r.settings.Timeout)
			r.opts.printer.volley(start, target, addr, report, sum)

			if r.opts.graph {
				plotLatencies(report, r.opts.graphWidth, r.opts.graphHeight, r.opts.graphMaxLatency)
			}
		}

		next = next.Add(r.opts.volleyInterval)
		if wait := time.Until(next); wait > 0 {
			select {
			case <-r.stop:
				return nil
			case <-time.After(wait):
			}
		}
	}
}

// stopped reports whether a stop has been requested, without blocking.
func (r *Runner) stopped() bool {
	select {
	case <-r.stop:
		return true
	default:
		return false
	}
}

// handleSignals converts the first SIGINT/SIGTERM into a stop request.
func (r *Runner) handleSignals() {
	signal.Notify(r.sigch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-r.sigch
		close(r.stop)
	}()
}

// resolveTarget resolves a target name to an IP address. ResolveIPAddr
// accepts an empty host and hands back a nil IP, so that case is rejected
// here rather than left for the engine to choke on.
func resolveTarget(target string) (*net.IPAddr, error) {
	addr, err := net.ResolveIPAddr("ip", target)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	if addr.IP == nil || addr.IP.IsUnspecified() {
		return nil, fmt.Errorf("failed to resolve %q: no address found", target)
	}
	return addr, nil
}

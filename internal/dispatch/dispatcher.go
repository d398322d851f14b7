package dispatch

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/nao1215/proxyspray/internal/config"
	"github.com/nao1215/proxyspray/internal/model"
	"github.com/nao1215/proxyspray/internal/probe"
)

// Prober issues a single probe request and classifies its outcome.
// It must be safe for concurrent use: the dispatcher calls it from one
// goroutine per outstanding work item.
type Prober interface {
	Probe(ctx context.Context, proxy model.Proxy, target string, headers map[string]string) model.Result
}

// workItem is one in-flight probe submission.
//
// The worker goroutine writes result and then flips done; the controlling
// goroutine reads done and only then reads result. The atomic store/load
// pair is the only synchronization the two sides need.
type workItem struct {
	result model.Result
	done   atomic.Bool
}

// ready reports whether the probe has completed.
func (w *workItem) ready() bool {
	return w.done.Load()
}

// Dispatcher submits scheme-compatible (proxy, target) pairs as concurrent
// probes and collects their results.
//
// The outstanding set is owned exclusively by the goroutine running Run;
// workers never touch it. Proxies, targets, and headers are shared
// read-only across all workers.
type Dispatcher struct {
	prober       Prober
	window       int
	submitDelay  time.Duration
	pollInterval time.Duration
	logger       *slog.Logger

	// onSubmit, when set, is invoked after every submission.
	// Used by the CLI to advance its progress bar.
	onSubmit func()
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithWindow sets the maximum number of outstanding probes.
// Non-positive values are ignored and the default of 4 is kept.
func WithWindow(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.window = n
		}
	}
}

// WithSubmitDelay sets the fixed pause after each submission.
func WithSubmitDelay(delay time.Duration) Option {
	return func(d *Dispatcher) {
		d.submitDelay = delay
	}
}

// WithPollInterval sets the sleep between completion scans.
func WithPollInterval(interval time.Duration) Option {
	return func(d *Dispatcher) {
		d.pollInterval = interval
	}
}

// WithLogger sets a custom logger for dispatch-level logging.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithSubmitHook registers a function called after every submission.
func WithSubmitHook(fn func()) Option {
	return func(d *Dispatcher) {
		d.onSubmit = fn
	}
}

// New creates a Dispatcher around the given prober.
func New(prober Prober, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		prober:       prober,
		window:       config.DefaultWindow,
		submitDelay:  config.DefaultSubmitDelay,
		pollInterval: config.DefaultPollInterval,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}

	return d
}

// CountPairs returns how many (proxy, target) pairs are scheme-compatible
// and will therefore be dispatched. Used for progress totals.
func CountPairs(proxies []model.Proxy, targets []string) int {
	var n int
	for _, p := range proxies {
		for _, t := range targets {
			if probe.Compatible(p, t) {
				n++
			}
		}
	}
	return n
}

// Run dispatches every scheme-compatible pair and reports each result
// through the report callback as soon as its completion is observed.
//
// Cancelling ctx stops further submissions and abandons the drain, but
// probes already submitted run to completion: each worker gets a context
// detached from ctx's cancellation, preserving the exactly-one-attempt
// contract for everything that was submitted.
//
// Run returns nil on normal completion and ctx's error on cancellation.
func (d *Dispatcher) Run(ctx context.Context, proxies []model.Proxy, targets []string, headers map[string]string, report func(model.Result)) error {
	outstanding := make([]*workItem, 0, d.window)

	d.logger.Debug("dispatch starting",
		"proxies", len(proxies),
		"targets", len(targets),
		"window", d.window,
	)

	for _, proxy := range proxies {
		for _, target := range targets {
			if !probe.Compatible(proxy, target) {
				continue
			}

			// Hold submission while the window is full. Every ready
			// item found during a scan is reported immediately, not
			// batched until the scan ends.
			for len(outstanding) == d.window {
				outstanding = d.reap(outstanding, report)
				if len(outstanding) < d.window {
					break
				}
				if err := d.sleep(ctx, d.pollInterval); err != nil {
					return err
				}
			}

			if err := ctx.Err(); err != nil {
				return err
			}

			outstanding = append(outstanding, d.submit(ctx, proxy, target, headers))
			if d.onSubmit != nil {
				d.onSubmit()
			}

			// Unconditional pacing after every submission. This
			// throttles the outgoing request rate even when the
			// window has slack.
			if err := d.sleep(ctx, d.submitDelay); err != nil {
				return err
			}
		}
	}

	d.logger.Debug("all pairs submitted, draining", "outstanding", len(outstanding))

	// Drain: only the head item is checked per iteration, with a full
	// poll interval between checks while any item remains.
	for len(outstanding) > 0 {
		if outstanding[0].ready() {
			report(outstanding[0].result)
			outstanding = outstanding[1:]
		}
		if len(outstanding) > 0 {
			if err := d.sleep(ctx, d.pollInterval); err != nil {
				return err
			}
		}
	}

	return nil
}

// submit launches the worker goroutine for one pair and returns its item.
func (d *Dispatcher) submit(ctx context.Context, proxy model.Proxy, target string, headers map[string]string) *workItem {
	item := &workItem{}
	probeCtx := context.WithoutCancel(ctx)
	go func() {
		item.result = d.prober.Probe(probeCtx, proxy, target, headers)
		item.done.Store(true)
	}()
	return item
}

// reap scans the outstanding set once, reporting and removing every item
// that has completed. Order among the survivors is preserved.
func (d *Dispatcher) reap(outstanding []*workItem, report func(model.Result)) []*workItem {
	remaining := outstanding[:0]
	for _, item := range outstanding {
		if item.ready() {
			report(item.result)
			continue
		}
		remaining = append(remaining, item)
	}
	return remaining
}

// sleep pauses for the given interval, returning early with ctx's error if
// the run is cancelled.
func (d *Dispatcher) sleep(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

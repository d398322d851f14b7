package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/nao1215/proxyspray/internal/config"
	"github.com/nao1215/proxyspray/internal/database"
	"github.com/nao1215/proxyspray/internal/dispatch"
	"github.com/nao1215/proxyspray/internal/input"
	"github.com/nao1215/proxyspray/internal/log"
	"github.com/nao1215/proxyspray/internal/model"
	"github.com/nao1215/proxyspray/internal/probe"
	"github.com/nao1215/proxyspray/internal/report"
	"github.com/spf13/cobra"
)

// banner is printed to stderr at the start of every spray run.
var banner = "\n" +
	"  _ \\                      __|\n" +
	"  __/ _| _ \\ \\ \\ /  |  | \\__ \\  _ \\   _| _` |  |  |\n" +
	"_|  _| \\___/  _\\_\\ \\_, | ____/ .__/ _| \\__,_| \\_, |\n" +
	"                    ___/       _|              ___/\n"

// NewSprayCmd creates the spray command.
func NewSprayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spray",
		Short: "Probe every scheme-compatible (proxy, target) pair once",
		Long: `Spray expands the supplied proxies and targets, pairs each proxy with
every target of a matching scheme, and sends exactly one GET request per
pair through the proxy. A pair succeeds when any response other than
403 Forbidden comes back; transport errors and 403 responses are failures.

Targets may be literal URLs, bare IPv4 addresses, CIDR ranges, or files
containing one of those per line. Scheme-less targets are tried as both
http and https unless an assumption is disabled.

Examples:
  # One proxy, one CIDR range of targets
  proxyspray spray -p http://127.0.0.1:8080 -t 10.0.0.0/28

  # Proxy and target lists from files, showing failures too
  proxyspray spray -p proxies.txt -t targets.txt --display-failures

  # Custom headers and a wider window
  proxyspray spray -p http://p:3128 -t internal.example.com \
    -H 'X-Forwarded-For: 127.0.0.1' --process-count 8

  # Save the run for later review with "proxyspray history"
  proxyspray spray -p http://p:3128 -t 10.0.0.0/30 --save-history`,
		Args: cobra.NoArgs,
		RunE: runSprayCmd,
	}

	// Input flags
	cmd.Flags().StringArrayP("proxy-urls", "p", nil,
		"Proxies to attempt in URL format; literal URLs and/or file paths (repeatable)")
	cmd.Flags().StringArrayP("targets", "t", nil,
		"Targets to hit via the proxies; URLs, IPs, CIDR ranges, and/or file paths (repeatable)")
	cmd.Flags().StringArrayP("http-headers", "H", nil,
		"Additional HTTP headers as 'Key: Value' strings and/or file paths (repeatable)")

	// Pairing and pacing flags
	cmd.Flags().IntP("process-count", "c", config.DefaultWindow,
		"Maximum number of probe requests in flight at once")
	cmd.Flags().Duration("submit-delay", config.DefaultSubmitDelay,
		"Fixed pause after every submission (request-rate throttle)")
	cmd.Flags().Duration("poll-interval", config.DefaultPollInterval,
		"Sleep between completion scans while waiting")
	cmd.Flags().Duration("timeout", config.DefaultTimeout,
		"Per-request timeout for each probe")

	// Scheme assumption flags
	cmd.Flags().Bool("no-assume-http", false,
		"Do not try scheme-less targets as http")
	cmd.Flags().Bool("no-assume-https", false,
		"Do not try scheme-less targets as https")

	// Output flags
	cmd.Flags().BoolP("display-failures", "f", false,
		"Display failed pairs in addition to successful ones")
	cmd.Flags().Bool("progress", false,
		"Render a progress bar on stderr while dispatching")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write a Markdown run summary (mutually exclusive with --json)")
	cmd.Flags().BoolP("json", "j", false,
		"Write a JSON run summary (mutually exclusive with --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write the run summary to the specified file instead of stdout")

	// Behavior flags
	cmd.Flags().Bool("preflight", false,
		"Dial each proxy endpoint before dispatching and report unreachable ones")
	cmd.Flags().Bool("save-history", false,
		"Save the run and its results to the history database")
	cmd.Flags().String("config", "",
		"Defaults file path (default: .proxyspray in current or home directory)")

	if err := cmd.MarkFlagRequired("proxy-urls"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagRequired("targets"); err != nil {
		panic(err)
	}

	return cmd
}

// runSprayCmd executes the spray command.
func runSprayCmd(cmd *cobra.Command, _ []string) error {
	cfg, fileDefaults, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with header-value masking
	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Cancel the run on interrupt. Probes already submitted still run to
	// completion; cancellation only stops new submissions.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runSpray(ctx, cfg, fileDefaults, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the optional
// .proxyspray defaults file. File values apply first; flags the user set
// explicitly win over them.
func buildConfig(cmd *cobra.Command) (*config.Config, *config.File, error) {
	cfg := config.NewConfig()

	var err error
	if cfg.ProxyInputs, err = cmd.Flags().GetStringArray("proxy-urls"); err != nil {
		return nil, nil, err
	}
	if cfg.TargetInputs, err = cmd.Flags().GetStringArray("targets"); err != nil {
		return nil, nil, err
	}
	if cfg.HeaderInputs, err = cmd.Flags().GetStringArray("http-headers"); err != nil {
		return nil, nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, nil, err
	}

	// Load the defaults file before flag values so that explicitly set
	// flags can override it below.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	fileDefaults := &config.File{}
	if configPath != "" {
		fileDefaults, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := fileDefaults.Apply(cfg); err != nil {
			return nil, nil, err
		}
	} else if explicitConfigPath {
		return nil, nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("process-count") {
		if cfg.Window, err = cmd.Flags().GetInt("process-count"); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("submit-delay") {
		if cfg.SubmitDelay, err = cmd.Flags().GetDuration("submit-delay"); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("poll-interval") {
		if cfg.PollInterval, err = cmd.Flags().GetDuration("poll-interval"); err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, nil, err
		}
	}

	var noAssumeHTTP, noAssumeHTTPS bool
	if noAssumeHTTP, err = cmd.Flags().GetBool("no-assume-http"); err != nil {
		return nil, nil, err
	}
	if noAssumeHTTPS, err = cmd.Flags().GetBool("no-assume-https"); err != nil {
		return nil, nil, err
	}
	cfg.AssumeHTTP = !noAssumeHTTP
	cfg.AssumeHTTPS = !noAssumeHTTPS

	var displayFailures bool
	if displayFailures, err = cmd.Flags().GetBool("display-failures"); err != nil {
		return nil, nil, err
	}
	cfg.DisplayFailures = cfg.DisplayFailures || displayFailures

	if cfg.Progress, err = cmd.Flags().GetBool("progress"); err != nil {
		return nil, nil, err
	}
	if cfg.Preflight, err = cmd.Flags().GetBool("preflight"); err != nil {
		return nil, nil, err
	}
	if cfg.SaveHistory, err = cmd.Flags().GetBool("save-history"); err != nil {
		return nil, nil, err
	}
	if cfg.MarkdownSummary, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, nil, err
	}
	if cfg.JSONSummary, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, nil, err
	}
	if cfg.SummaryFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, nil, err
	}

	return cfg, fileDefaults, nil
}

// runSpray executes the spray run.
func runSpray(ctx context.Context, cfg *config.Config, fileDefaults *config.File, logger *slog.Logger) error {
	fmt.Fprintln(os.Stderr, banner)

	// Expand inputs. Any malformed proxy, header, or CIDR is fatal here,
	// before a single request is sent.
	fmt.Fprint(os.Stderr, "[+] Loading proxies...")
	proxySet, err := input.LoadProxies(cfg.ProxyInputs)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "done!")

	fmt.Fprint(os.Stderr, "[+] Loading targets...")
	assumption := input.Assumption{HTTP: cfg.AssumeHTTP, HTTPS: cfg.AssumeHTTPS}
	targets, err := input.LoadTargets(cfg.TargetInputs, assumption)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "done!")

	fmt.Fprint(os.Stderr, "[+] Loading http headers...")
	headers, err := input.LoadHeaders(cfg.HeaderInputs, fileDefaults.Headers)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "done!")

	proxies := proxySet.Proxies()
	logger.Debug("inputs expanded",
		"proxies", len(proxies),
		"targets", len(targets),
		"headers", len(headers),
	)

	if cfg.Preflight {
		runPreflight(ctx, proxies, cfg.Window)
	}

	fmt.Fprintln(os.Stderr, "[+] Beginning to send HTTP requests")
	if !cfg.DisplayFailures {
		fmt.Fprintln(os.Stderr, "[+] Failed requests will not be displayed")
	}

	run := &model.Run{
		StartedAt:   time.Now(),
		Window:      cfg.Window,
		ProxyCount:  len(proxies),
		TargetCount: len(targets),
	}

	reporter := report.NewLineReporter(os.Stdout, cfg.DisplayFailures)

	opts := []dispatch.Option{
		dispatch.WithWindow(cfg.Window),
		dispatch.WithSubmitDelay(cfg.SubmitDelay),
		dispatch.WithPollInterval(cfg.PollInterval),
		dispatch.WithLogger(logger),
	}

	var bar *pb.ProgressBar
	if cfg.Progress {
		bar = pb.New(dispatch.CountPairs(proxies, targets))
		bar.SetWriter(os.Stderr)
		bar.Start()
		opts = append(opts, dispatch.WithSubmitHook(func() { bar.Increment() }))
	}

	prober := probe.NewHTTPProber(probe.WithTimeout(cfg.Timeout))
	dispatcher := dispatch.New(prober, opts...)

	runErr := dispatcher.Run(ctx, proxies, targets, headers, func(res model.Result) {
		run.Results = append(run.Results, res)
		reporter.Report(res)
	})

	if bar != nil {
		bar.Finish()
	}

	run.FinishedAt = time.Now()
	summary := run.Summarize()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "[!] Run cancelled: %d succeeded, %d failed\n",
			summary.Succeeded, summary.Failed)
		return runErr
	}

	fmt.Fprintf(os.Stderr, "[+] Execution complete: %d succeeded, %d failed in %s\n",
		summary.Succeeded, summary.Failed, summary.Elapsed.Round(time.Millisecond))

	if cfg.SaveHistory {
		if err := saveRun(ctx, cfg, run, logger); err != nil {
			logger.Error("failed to save run history", "error", err)
		}
	}

	if cfg.MarkdownSummary || cfg.JSONSummary {
		if err := writeSummary(cfg, run); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	return nil
}

// runPreflight dials every proxy endpoint and reports dead ones on stderr.
// Informational only: unreachable proxies still participate in the run.
func runPreflight(ctx context.Context, proxies []model.Proxy, concurrency int) {
	fmt.Fprint(os.Stderr, "[+] Preflighting proxies...")
	results := probe.Preflight(ctx, proxies, concurrency)
	fmt.Fprintln(os.Stderr, "done!")

	for _, r := range results {
		if !r.Reachable {
			fmt.Fprintf(os.Stderr, "[!] Proxy unreachable: %s (%s)\n", r.Proxy.Address, r.Err)
		}
	}
}

// saveRun persists the run to the history database.
func saveRun(ctx context.Context, cfg *config.Config, run *model.Run, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, run)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "[+] Run saved to history as #%d (%s)\n", id, db.Path())
	logger.Debug("run saved", "id", id, "results", len(run.Results))
	return nil
}

// writeSummary renders the run summary in the requested format.
func writeSummary(cfg *config.Config, run *model.Run) error {
	var output *os.File
	if cfg.SummaryFile != "" {
		dir := filepath.Dir(cfg.SummaryFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.SummaryFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	if cfg.JSONSummary {
		writer = report.NewJSONWriter(output)
	} else {
		writer = report.NewMarkdownWriter(output)
	}

	_, err := writer.Write(run)
	return err
}

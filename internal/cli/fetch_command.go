package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"oraj-pole/internal/fetch"
	"oraj-pole/internal/model"
	"oraj-pole/internal/replaystore"
	"oraj-pole/internal/ussr"
)

type fetchFlags struct {
	outDir            string
	apiBase           string
	timeout           time.Duration
	rate              float64
	skipFailedPlayers bool
	plain             bool
	verbose           bool
}

func parseFetchFlags(args []string, stderr io.Writer) (fetchFlags, error) {
	fs := flag.NewFlagSet("oraj-pole", flag.ContinueOnError)
	outDir := fs.String("out-dir", replaystore.DefaultRoot, "output directory")
	apiBase := fs.String("api-base", ussr.DefaultBaseURL, "server base URL")
	timeout := fs.Duration("timeout", 0, "per-request timeout (0 = none)")
	rate := fs.Float64("rate", 0, "max requests per second (0 = unlimited)")
	skipFailed := fs.Bool("skip-failed-players", false, "skip players whose best scores cannot be listed instead of aborting")
	plain := fs.Bool("plain", false, "plain line prompts, no progress bars")
	verbose := fs.Bool("verbose", false, "debug logs on stderr")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return fetchFlags{}, err
	}
	if fs.NArg() > 0 {
		return fetchFlags{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if *timeout < 0 {
		return fetchFlags{}, fmt.Errorf("timeout must be >= 0")
	}
	if *rate < 0 {
		return fetchFlags{}, fmt.Errorf("rate must be >= 0 requests per second")
	}
	return fetchFlags{
		outDir:            strings.TrimSpace(*outDir),
		apiBase:           strings.TrimSpace(*apiBase),
		timeout:           *timeout,
		rate:              *rate,
		skipFailedPlayers: *skipFailed,
		plain:             *plain,
		verbose:           *verbose,
	}, nil
}

func runFetch(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFetchFlags(args, stderr)
	if err != nil {
		return err
	}

	interactive := !opts.plain && isTerminal(stdin) && isTerminal(stdout)
	logger := newLogger(stderr, opts.verbose)
	reporter := newConsoleReporter(stdout, interactive)

	var prompter Prompter = newLinePrompter(stdin, stdout)
	if interactive {
		prompter = teaPrompter{in: stdin, out: stdout}
	}

	fmt.Fprintln(stdout, renderBanner())

	client := ussr.NewClient(ussr.Options{
		BaseURL:           opts.apiBase,
		Timeout:           opts.timeout,
		RequestsPerSecond: opts.rate,
		Logger:            logger,
	})
	store := replaystore.New(opts.outDir)
	logger.Debug("starting run", "api_base", client.BaseURL(), "out_dir", store.Root())

	_, err = fetch.Run(context.Background(), fetch.Options{
		API:   client,
		Store: store,
		Collect: func() (model.Params, error) {
			return CollectParams(prompter, reporter)
		},
		SkipFailedPlayers: opts.skipFailedPlayers,
		Reporter:          reporter,
		Logger:            logger,
	})
	return err
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

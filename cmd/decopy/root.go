package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/decopy/decopy/pkg/config"
	"github.com/decopy/decopy/pkg/dircopy"
	"github.com/decopy/decopy/pkg/log"
	"github.com/decopy/decopy/pkg/operation"
	"github.com/decopy/decopy/pkg/ui"
)

var (
	// Flags
	configFile string
	debug      bool
	yes        bool
	noColor    bool
	plain      bool
)

// errDestinationsFailed marks a run where some destinations failed while
// others may have succeeded; the exit-code mapping keys on it.
var errDestinationsFailed = errors.New("destination copies failed")

// renderError marks a terminal write failure. Fatal: the UI cannot
// continue meaningfully.
type renderError struct {
	err error
}

func (e *renderError) Error() string {
	return fmt.Sprintf("rendering failed: %v", e.err)
}

func (e *renderError) Unwrap() error {
	return e.err
}

// previewLimit caps the pre-copy directory listing.
const previewLimit = 5

// NewRootCmd creates the decopy command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decopy SOURCE DESTINATION [DESTINATION...]",
		Short: "Copy a directory's contents into one or more destinations",
		Long: `decopy copies the contents of SOURCE into every DESTINATION, in order,
showing live progress in the terminal. Existing destination files are
overwritten unless the config says otherwise. A destination that fails
does not stop the remaining ones; the summary reports both.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			if noColor {
				color.NoColor = true
				pterm.DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(cmd.Context(), args[0], args[1:])
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: discover .decopy.yaml/.decopy.hcl)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&plain, "plain", false, "render plain log lines instead of boxes")

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
}

// runCopy is the whole run: resolve paths, confirm, copy, summarize.
func runCopy(ctx context.Context, source string, destinations []string) error {
	console := log.FromContext(ctx, os.Stdout)

	queue, err := buildQueue(source, destinations)
	if err != nil {
		return err
	}

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return err
	}

	display, err := ui.New(ui.Options{
		Out:   os.Stdout,
		Plain: plain || !term.IsTerminal(int(os.Stdout.Fd())),
	})
	if err != nil {
		return err
	}

	if err := display.WithPreCopy(queue).Render(ctx); err != nil {
		return &renderError{err: err}
	}
	preview(console, queue.Source())

	if !yes {
		confirmed, err := confirm(os.Stdin)
		if err != nil {
			return errors.Errorf("reading confirmation: %w", err)
		}
		if !confirmed {
			console.Info("Aborting copy...")
			return nil
		}
	}
	console.Info("Copying files...")

	runner := operation.NewRunner(dircopy.Options{
		Overwrite:      cfg.OverwriteEnabled(),
		ChunkSize:      cfg.ChunkSize,
		IgnorePatterns: cfg.Ignore,
	})
	events := operation.NewEventChannel()

	var (
		report *operation.Report
		runErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The runner's own failure is handled after the group: the
		// renderer must still drain the channel and close the box.
		report, runErr = runner.Run(gctx, queue, events)
		return nil
	})
	g.Go(func() error {
		if err := display.WithCopying(events).Render(gctx); err != nil {
			return &renderError{err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if runErr != nil {
		// Fatal source error or cancellation. Report whatever was
		// attempted before it.
		summarize(ctx, report)
		return runErr
	}

	if err := display.WithCompleted(queue).Render(ctx); err != nil {
		return &renderError{err: err}
	}
	console.Info("Files finished copying")
	summarize(ctx, report)

	if !report.Ok() {
		return errors.Errorf("%w: %d of %d destination(s)",
			errDestinationsFailed, len(report.Failed()), len(report.Results))
	}
	return nil
}

// buildQueue resolves the argument paths and validates the source.
func buildQueue(source string, destinations []string) (*operation.Queue, error) {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return nil, errors.Errorf("resolving source path: %w", err)
	}
	info, err := os.Stat(absSource)
	if err != nil {
		return nil, errors.Errorf("source %s: %w", source, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("source %s is not a directory", source)
	}

	absDests := make([]string, 0, len(destinations))
	for _, dest := range destinations {
		abs, err := filepath.Abs(dest)
		if err != nil {
			return nil, errors.Errorf("resolving destination path %s: %w", dest, err)
		}
		absDests = append(absDests, abs)
	}

	return operation.NewQueue(absSource, absDests)
}

// preview lists the first few top-level entries of the source, so the user
// sees what is about to be copied. A listing failure is left for the sizing
// step to surface.
func preview(console *log.Logger, source string) {
	entries, err := os.ReadDir(source)
	if err != nil {
		return
	}
	console.Newline()
	for i, entry := range entries {
		if i == previewLimit {
			console.Dim(fmt.Sprintf("... +%d more ...", len(entries)-previewLimit))
			break
		}
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		console.Dim(name)
	}
}

// confirm reads one line; y/yes (any case) proceeds, anything else aborts.
func confirm(in io.Reader) (bool, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// summarize prints the per-destination outcome and the closing totals.
func summarize(ctx context.Context, report *operation.Report) {
	if report == nil || len(report.Results) == 0 {
		return
	}
	user := log.NewUserLogger(ctx)
	for _, res := range report.Results {
		user.LogDestinationResult(res.Destination, res.Bytes, res.Err)
	}
	user.LogRunSummary(len(report.Succeeded()), len(report.Failed()), report.TotalBytes)
}

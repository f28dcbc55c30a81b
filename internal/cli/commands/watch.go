package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mundi-engine/reflectgen/internal/cli/ui"
	"github.com/mundi-engine/reflectgen/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Regenerate reflection code when headers change",
		Long: `Generate once, then watch the source tree and regenerate whenever a
matching header is written, created, removed or renamed.

Changes are batched over a short quiet period so saving several headers
at once triggers a single regeneration. The output directory is never
watched.`,
		Example: `  reflectgen watch
  reflectgen watch Engine/Source -o Engine/Intermediate/Generated -v`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, args, &flags)
			if err != nil {
				return err
			}

			logger := newLogger(flags.verbose)
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			session := &watchSession{opts: opts, logger: logger, out: out}
			if err := session.regenerate(ctx); err != nil {
				return err
			}

			watcher, err := watch.NewFileWatcher(watch.Options{
				Root:    opts.SourceDir,
				Include: opts.Include,
				Exclude: opts.Exclude,
				Ignored: []string{opts.OutputDir},
				Logger:  logger,
			}, func(files []string) error {
				logger.Info("regenerating", zap.Strings("changed", files))
				return session.regenerate(ctx)
			})
			if err != nil {
				return err
			}
			if err := watcher.Start(); err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}

			banner := color.New(color.FgCyan, color.Bold)
			fmt.Fprintln(out)
			banner.Fprintf(out, "Watching %s\n", opts.SourceDir)
			fmt.Fprintf(out, "   Output: %s\n", opts.OutputDir)
			color.New(color.FgYellow).Fprintln(out, "   Press Ctrl+C to stop")
			fmt.Fprintln(out)

			<-ctx.Done()

			fmt.Fprintln(out, "\nShutting down...")
			if err := watcher.Stop(); err != nil {
				return fmt.Errorf("error stopping watcher: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd, true)

	return cmd
}

// watchSession serializes regenerations triggered by the watcher
type watchSession struct {
	mu     sync.Mutex
	opts   *pipelineOptions
	logger *zap.Logger
	out    io.Writer
}

// regenerate runs a full generation. Per-file problems are printed and do
// not stop watching; only errors that abort the run are returned.
func (s *watchSession) regenerate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := runGenerate(ctx, s.opts, s.logger)
	if err != nil {
		return err
	}

	ui.WriteDiagnostics(s.out, report.Diagnostics, false)
	ui.WriteSuccess(s.out, fmt.Sprintf("%d class(es), %d file(s) changed", len(report.Classes), report.changed()), false)
	return nil
}

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mundi-engine/reflectgen/internal/cli/ui"
	compilererrors "github.com/mundi-engine/reflectgen/internal/compiler/errors"
	"github.com/mundi-engine/reflectgen/internal/output"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate reflection registration code",
		Long: `Scan headers under the source directory and write a <Class>.generated.h and
<Class>.generated.cpp pair for every reflected class.

Files whose content did not change are left untouched, so incremental
builds only recompile what actually changed. Headers that cannot be read
are reported and skipped; the remaining headers are still generated.`,
		Example: `  # Generate using reflectgen.yml (or defaults)
  reflectgen generate

  # Generate from a specific source tree into a custom directory
  reflectgen generate Engine/Source -o Engine/Intermediate/Generated

  # Show what would change without writing anything
  reflectgen generate --dry-run -v

  # Machine-readable output for build tooling
  reflectgen generate --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, args, &flags)
			if err != nil {
				return err
			}
			opts.DryRun = dryRun

			logger := newLogger(flags.verbose)
			defer logger.Sync()

			startTime := time.Now()
			report, err := runGenerate(commandContext(cmd), opts, logger)
			if err != nil {
				return err
			}

			if flags.json {
				if err := writeGenerateJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				writeGenerateSummary(cmd.OutOrStdout(), report, flags.verbose, dryRun, time.Since(startTime))
			}

			if n := compilererrors.CountErrors(report.Diagnostics); n > 0 {
				return fmt.Errorf("%d header(s) could not be processed", n)
			}
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be written without touching the output directory")

	return cmd
}

type generateJSON struct {
	FilesScanned int                 `json:"files_scanned"`
	Classes      []string            `json:"classes"`
	Files        []output.FileResult `json:"files"`
	Diagnostics  json.RawMessage     `json:"diagnostics"`
}

func writeGenerateJSON(w io.Writer, report *generateReport) error {
	diags, err := compilererrors.FormatErrorsAsJSON(report.Diagnostics)
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	names := make([]string, 0, len(report.Classes))
	for _, cls := range report.Classes {
		names = append(names, cls.Name)
	}

	data, err := json.MarshalIndent(generateJSON{
		FilesScanned: report.FilesScanned,
		Classes:      names,
		Files:        report.Files,
		Diagnostics:  json.RawMessage(diags),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	fmt.Fprintln(w, string(data))
	return nil
}

func writeGenerateSummary(w io.Writer, report *generateReport, verbose, dryRun bool, elapsed time.Duration) {
	infoColor := color.New(color.FgCyan)

	if verbose {
		for _, f := range report.Files {
			if f.Status == output.Unchanged {
				continue
			}
			infoColor.Fprintf(w, "  %-9s %s\n", f.Status, f.Path)
		}
	}

	ui.WriteDiagnostics(w, report.Diagnostics, false)

	verb := "Generated"
	if dryRun {
		verb = "Would generate"
	}
	ui.WriteSuccess(w, fmt.Sprintf("%s %d class(es) from %d header(s), %d file(s) changed (%.2fs)",
		verb, len(report.Classes), report.FilesScanned, report.changed(), elapsed.Seconds()), false)
}

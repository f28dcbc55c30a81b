package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mundi-engine/reflectgen/internal/cli/config"
	"github.com/mundi-engine/reflectgen/internal/compiler/codegen"
	compilererrors "github.com/mundi-engine/reflectgen/internal/compiler/errors"
	"github.com/mundi-engine/reflectgen/internal/compiler/metadata"
	"github.com/mundi-engine/reflectgen/internal/output"
	"github.com/mundi-engine/reflectgen/internal/scan"
)

// ManifestFileName is written into the output directory when manifests are enabled
const ManifestFileName = "reflection_manifest.json"

// pipelineFlags are the flags shared by generate, list and watch
type pipelineFlags struct {
	output  string
	jobs    int
	verbose bool
	json    bool
}

func (f *pipelineFlags) register(cmd *cobra.Command, withOutput bool) {
	if withOutput {
		cmd.Flags().StringVarP(&f.output, "output", "o", "", "Directory for generated files (default from config: Intermediate/Generated)")
	}
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "Number of headers parsed in parallel (default from config: 1)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Show detailed output")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output results in JSON format")
}

// pipelineOptions is the configuration of one run after flags are applied
type pipelineOptions struct {
	SourceDir string
	OutputDir string
	Include   []string
	Exclude   []string
	Jobs      int
	Manifest  bool
	DryRun    bool
	Codegen   codegen.Options
}

// resolveOptions merges the config file with flags. A positional directory
// argument replaces the configured source directory.
func resolveOptions(cmd *cobra.Command, args []string, flags *pipelineFlags) (*pipelineOptions, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.SourceDir = args[0]
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = flags.output
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &pipelineOptions{
		SourceDir: cfg.SourceDir,
		OutputDir: cfg.OutputDir,
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
		Jobs:      cfg.Jobs,
		Manifest:  cfg.Manifest,
		Codegen: codegen.Options{
			PCHHeader:   cfg.PCHHeader,
			LuaBindings: cfg.LuaBindings,
		},
	}, nil
}

func newScanner(opts *pipelineOptions, logger *zap.Logger) *scan.Scanner {
	return scan.NewScanner(scan.Options{
		Include: opts.Include,
		Exclude: opts.Exclude,
		Jobs:    opts.Jobs,
		Logger:  logger,
	})
}

// generateReport summarizes one generation run
type generateReport struct {
	FilesScanned int
	Classes      []*metadata.ClassDecl
	Files        []output.FileResult
	Diagnostics  []compilererrors.CompilerError
}

// changed counts files that were created or updated
func (r *generateReport) changed() int {
	n := 0
	for _, f := range r.Files {
		if f.Status != output.Unchanged {
			n++
		}
	}
	return n
}

// runGenerate scans the source tree and writes generated code for every
// reflected class. Per-file failures end up in the report; rendering and
// write failures abort the run.
func runGenerate(ctx context.Context, opts *pipelineOptions, logger *zap.Logger) (*generateReport, error) {
	result, err := newScanner(opts, logger).FindReflectionClasses(ctx, opts.SourceDir)
	if err != nil {
		return nil, err
	}

	report := &generateReport{
		FilesScanned: result.FilesScanned,
		Diagnostics:  result.Diagnostics,
		Classes:      make([]*metadata.ClassDecl, 0, len(result.Classes)),
		Files:        make([]output.FileResult, 0),
	}

	gen := codegen.NewGenerator()
	writer := output.NewWriter(opts.OutputDir, opts.DryRun)

	// Generated file names derive from the class name, so the first
	// declaration in path order wins
	seen := make(map[string]string)
	for _, cls := range result.Classes {
		if first, ok := seen[cls.Name]; ok {
			diag := compilererrors.NewCompilerError(
				compilererrors.PhaseGenerate,
				compilererrors.CodeDuplicateClass,
				fmt.Sprintf("class %s is already declared in %s", cls.Name, first),
				compilererrors.SourceLocation{File: cls.SourcePath},
				compilererrors.Warning,
			)
			logger.Warn("skipping duplicate class", zap.String("class", cls.Name), zap.String("file", cls.SourcePath))
			report.Diagnostics = append(report.Diagnostics, diag)
			continue
		}
		seen[cls.Name] = cls.SourcePath

		files, err := gen.GenerateFiles(cls, opts.Codegen)
		if err != nil {
			return nil, err
		}
		written, err := writer.WriteAll(files)
		if err != nil {
			return nil, fmt.Errorf("failed to write generated files for %s: %w", cls.Name, err)
		}

		report.Classes = append(report.Classes, cls)
		report.Files = append(report.Files, written...)
	}

	if opts.Manifest {
		data, err := metadata.Serialize(metadata.NewManifest(report.Classes))
		if err != nil {
			return nil, fmt.Errorf("failed to serialize manifest: %w", err)
		}
		res, err := writer.WriteFile(ManifestFileName, data)
		if err != nil {
			return nil, fmt.Errorf("failed to write manifest: %w", err)
		}
		report.Files = append(report.Files, res)
	}

	logger.Info("generation complete",
		zap.Int("classes", len(report.Classes)),
		zap.Int("files_changed", report.changed()),
		zap.Bool("dry_run", opts.DryRun),
	)

	return report, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

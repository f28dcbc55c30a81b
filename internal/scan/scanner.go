// Package scan runs the header pipeline over a source tree. Each file is
// parsed and classified in isolation; a failing file yields a diagnostic
// and never aborts the batch.
package scan

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mundi-engine/reflectgen/internal/compiler/classifier"
	compilererrors "github.com/mundi-engine/reflectgen/internal/compiler/errors"
	"github.com/mundi-engine/reflectgen/internal/compiler/metadata"
	"github.com/mundi-engine/reflectgen/internal/compiler/parser"
	"github.com/mundi-engine/reflectgen/internal/utils"
)

// Options configures a Scanner
type Options struct {
	Include []string
	Exclude []string
	// Jobs bounds the number of files parsed at once. Values below 1 mean 1.
	Jobs   int
	Logger *zap.Logger
}

// Result is the outcome of one scan
type Result struct {
	// Classes in sorted header path order
	Classes      []*metadata.ClassDecl
	Diagnostics  []compilererrors.CompilerError
	FilesScanned int
}

// Scanner discovers headers and extracts their reflected classes
type Scanner struct {
	include []string
	exclude []string
	jobs    int
	logger  *zap.Logger
	parser  *parser.Parser
}

// NewScanner creates a new Scanner
func NewScanner(opts Options) *Scanner {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		include: opts.Include,
		exclude: opts.Exclude,
		jobs:    jobs,
		logger:  logger,
		parser:  parser.New(),
	}
}

type fileOutcome struct {
	class *metadata.ClassDecl
	diag  *compilererrors.CompilerError
}

// FindReflectionClasses scans every matching header under root. The error
// return is reserved for discovery failures and cancellation.
func (s *Scanner) FindReflectionClasses(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source path is not a directory: %s", root)
	}

	files, err := utils.FindHeaderFiles(root, s.include, s.exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to discover headers: %w", err)
	}

	s.logger.Debug("discovered headers", zap.String("root", root), zap.Int("count", len(files)))

	outcomes := make([]fileOutcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)

	for i, path := range files {
		i, path := i, path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = s.scanFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Classes:      make([]*metadata.ClassDecl, 0),
		Diagnostics:  make([]compilererrors.CompilerError, 0),
		FilesScanned: len(files),
	}
	for _, o := range outcomes {
		if o.diag != nil {
			result.Diagnostics = append(result.Diagnostics, *o.diag)
		}
		if o.class != nil {
			result.Classes = append(result.Classes, o.class)
		}
	}

	s.logger.Info("scan complete",
		zap.Int("files", result.FilesScanned),
		zap.Int("classes", len(result.Classes)),
		zap.Int("diagnostics", len(result.Diagnostics)),
	)

	return result, nil
}

// scanFile runs the pipeline on a single header. A zero outcome means the
// file carries no reflected class.
func (s *Scanner) scanFile(path string) (out fileOutcome) {
	defer func() {
		if r := recover(); r != nil {
			diag := compilererrors.FileError(compilererrors.CodeParsePanic, path, fmt.Errorf("panic while parsing: %v", r))
			s.logger.Warn("recovered from parser panic", zap.String("file", path), zap.Any("panic", r))
			out = fileOutcome{diag: &diag}
		}
	}()

	cls, err := s.parser.ParseFile(path)
	if err != nil {
		diag := compilererrors.FileError(compilererrors.CodeReadFailed, path, err)
		s.logger.Warn("failed to read header", zap.String("file", path), zap.Error(err))
		return fileOutcome{diag: &diag}
	}
	if cls == nil {
		return fileOutcome{}
	}

	classifier.ApplyClass(cls)
	s.logger.Debug("found reflected class",
		zap.String("class", cls.Name),
		zap.String("file", path),
		zap.Int("properties", len(cls.Properties)),
		zap.Int("functions", len(cls.Functions)),
	)

	return fileOutcome{class: cls}
}

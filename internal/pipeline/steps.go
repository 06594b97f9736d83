package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/simcheck/internal/engine"
	"github.com/nao1215/simcheck/internal/extract"
	"github.com/nao1215/simcheck/internal/model"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrRootNotFound is returned when the assignments folder does not exist.
	ErrRootNotFound = errors.New("assignments folder not found")

	// ErrRootNotDirectory is returned when the assignments path is a file.
	ErrRootNotDirectory = errors.New("assignments path is not a directory")
)

// DiscoverStep lists the submission folders under the run root.
// Every subfolder is one submission; the regular files directly inside it
// are its candidate documents.
type DiscoverStep struct {
	// ignorePatterns are glob patterns matched against file base names.
	// Matching files are not counted as submitted files.
	ignorePatterns []string

	logger *slog.Logger
}

// DiscoverStepOption configures a DiscoverStep.
type DiscoverStepOption func(*DiscoverStep)

// WithIgnorePatterns skips files whose base name matches any pattern.
func WithIgnorePatterns(patterns []string) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.ignorePatterns = patterns
	}
}

// WithDiscoverLogger sets a custom logger for the discover step.
func WithDiscoverLogger(logger *slog.Logger) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.logger = logger
	}
}

// NewDiscoverStep creates a new discover step.
func NewDiscoverStep(opts ...DiscoverStepOption) *DiscoverStep {
	s := &DiscoverStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *DiscoverStep) Name() string {
	return "discover"
}

// Do fills run.Submissions.
func (s *DiscoverStep) Do(_ context.Context, run *model.Run) error {
	root, err := filepath.Abs(run.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", run.Root, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, run.Root)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotDirectory, run.Root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to read assignments folder: %w", err)
	}

	var subs []model.Submission
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		if !isDir(dir) {
			continue
		}
		files, err := s.listFiles(dir)
		if err != nil {
			return err
		}
		subs = append(subs, model.NewSubmission(entry.Name(), dir, files))
	}

	run.Submissions = model.NewSubmissionSet(subs...)
	s.logger.Info("discovered submissions",
		"root", root,
		"submissions", len(run.Submissions),
		"malformed", len(run.Submissions.Malformed()),
	)
	return nil
}

// listFiles returns the regular files (following symlinks) directly in dir.
func (s *DiscoverStep) listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission folder %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if s.ignored(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func (s *DiscoverStep) ignored(name string) bool {
	for _, pattern := range s.ignorePatterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ExtractStep fills in the text and digest of every well-formed submission.
// Malformed submissions are left untouched. Any extraction error, including
// extract.ErrUnsupportedFormat, fails the run.
type ExtractStep struct {
	source      extract.Source
	concurrency int
	logger      *slog.Logger
}

// ExtractStepOption configures an ExtractStep.
type ExtractStepOption func(*ExtractStep)

// WithExtractConcurrency sets how many documents are extracted at once.
func WithExtractConcurrency(n int) ExtractStepOption {
	return func(s *ExtractStep) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithExtractLogger sets a custom logger for the extract step.
func WithExtractLogger(logger *slog.Logger) ExtractStepOption {
	return func(s *ExtractStep) {
		s.logger = logger
	}
}

// NewExtractStep creates an extract step reading through source.
func NewExtractStep(source extract.Source, opts ...ExtractStepOption) *ExtractStep {
	s := &ExtractStep{
		source:      source,
		concurrency: 1,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do extracts every well-formed submission of the run.
func (s *ExtractStep) Do(ctx context.Context, run *model.Run) error {
	subs := run.Submissions

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range subs {
		if !subs[i].WellFormed() {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sub := &subs[i]

			text, err := s.source.Extract(sub.Path)
			if err != nil {
				return fmt.Errorf("submission %s: %w", sub.Owner, err)
			}
			digest, err := extract.Digest(sub.Path)
			if err != nil {
				return fmt.Errorf("submission %s: failed to fingerprint: %w", sub.Owner, err)
			}

			sub.Text = text
			sub.Digest = digest
			sub.Extracted = true

			if strings.TrimSpace(text) == "" {
				s.logger.Warn("no text extracted from submission",
					"owner", sub.Owner,
					"path", sub.Path,
				)
			}

			s.logger.Debug("extracted submission",
				"owner", sub.Owner,
				"path", sub.Path,
				"chars", len(text),
			)
			return nil
		})
	}

	return g.Wait()
}

// CompareStep runs the comparison engine over the extracted submissions.
type CompareStep struct {
	engine *engine.Engine
}

// NewCompareStep creates a compare step using e.
func NewCompareStep(e *engine.Engine) *CompareStep {
	return &CompareStep{engine: e}
}

// Name returns the step name.
func (s *CompareStep) Name() string {
	return "compare"
}

// Do sets run.Matrix.
func (s *CompareStep) Do(ctx context.Context, run *model.Run) error {
	matrix, err := s.engine.Compare(ctx, run.Submissions)
	if err != nil {
		return err
	}
	run.Matrix = matrix
	return nil
}

// DefaultOptions configures DefaultPipeline.
type DefaultOptions struct {
	// IgnorePatterns are passed to the discover step.
	IgnorePatterns []string

	// Concurrency is used for extraction.
	Concurrency int

	// Logger is shared by the pipeline and all steps.
	Logger *slog.Logger
}

// DefaultPipeline creates the standard discover → extract → compare pipeline.
func DefaultPipeline(source extract.Source, e *engine.Engine, opts DefaultOptions) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := New(WithLogger(logger))
	p.AddSteps(
		NewDiscoverStep(
			WithIgnorePatterns(opts.IgnorePatterns),
			WithDiscoverLogger(logger),
		),
		NewExtractStep(source,
			WithExtractConcurrency(opts.Concurrency),
			WithExtractLogger(logger),
		),
		NewCompareStep(e),
	)
	return p
}

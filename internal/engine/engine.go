package engine

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/nao1215/simcheck/internal/lexicon"
	"github.com/nao1215/simcheck/internal/model"
	"github.com/nao1215/simcheck/internal/similarity"
	"golang.org/x/sync/errgroup"
)

// Remark texts.
const (
	// RemarkIdentical is recorded when the texts only differ in case or
	// surrounding whitespace.
	RemarkIdentical = "texts are identical (modulo case/whitespace)"

	// remarkSharedNonWordPrefix precedes each shared unknown token.
	remarkSharedNonWordPrefix = "shared non-word: "
)

// SharedNonWordRemark formats the remark for a shared unknown token.
func SharedNonWordRemark(token string) string {
	return remarkSharedNonWordPrefix + token
}

// Engine compares submissions pairwise.
type Engine struct {
	oracle      lexicon.Oracle
	metric      similarity.Metric
	logger      *slog.Logger
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for malformed-submission warnings and
// per-pair diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetric replaces the default normalized Levenshtein metric.
func WithMetric(metric similarity.Metric) Option {
	return func(e *Engine) {
		e.metric = metric
	}
}

// WithConcurrency sets how many pairs are compared at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// New creates an Engine that asks oracle for unknown words.
func New(oracle lexicon.Oracle, opts ...Option) *Engine {
	e := &Engine{
		oracle:      oracle,
		metric:      similarity.NormalizedLevenshtein{},
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// pairJob identifies one eligible pair by index into the set.
type pairJob struct {
	first, second int
}

// Compare builds the matrix for set. Submissions must already carry their
// extracted text. Every owner in set becomes a top-level key of the result.
//
// Pairs are independent, so with concurrency > 1 they run on an errgroup.
// Each job writes only its own slot and the matrix is assembled after all
// jobs finished.
func (e *Engine) Compare(ctx context.Context, set model.SubmissionSet) (model.ComparisonMatrix, error) {
	matrix := model.NewComparisonMatrix(set.Owners())

	for _, sub := range set {
		if !sub.WellFormed() {
			e.logger.Warn("multiple (or 0) files in submission folder, skipping",
				"owner", sub.Owner,
				"dir", sub.Dir,
				"files", len(sub.Files),
			)
		}
	}

	var jobs []pairJob
	for i := range set {
		if !set[i].WellFormed() {
			continue
		}
		for j := i + 1; j < len(set); j++ {
			if set[j].WellFormed() {
				jobs = append(jobs, pairJob{first: i, second: j})
			}
		}
	}

	results := make([]model.ComparisonResult, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for k, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[k] = e.ComparePair(set[job.first], set[job.second])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for k, job := range jobs {
		matrix.Set(set[job.first].Owner, set[job.second].Owner, results[k])
	}

	e.logger.Info("comparison complete",
		"submissions", len(set),
		"pairs", len(jobs),
	)
	return matrix, nil
}

// ComparePair compares two well-formed submissions. Both raw texts are
// recorded in the run log at Info level.
func (e *Engine) ComparePair(a, b model.Submission) model.ComparisonResult {
	e.logger.Info("comparing submissions",
		"first", a.Owner,
		"second", b.Owner,
		"first_text", a.Text,
		"second_text", b.Text,
	)
	return CompareTexts(a.Text, b.Text, e.metric, e.oracle)
}

// CompareTexts runs the pairwise algorithm on two raw texts.
//
// The score is always the distance between the raw texts. Texts equal after
// case folding and trimming get only RemarkIdentical; otherwise each shared
// token unknown to oracle yields one remark, sorted by token.
func CompareTexts(a, b string, metric similarity.Metric, oracle lexicon.Oracle) model.ComparisonResult {
	result := model.ComparisonResult{
		Score:   metric.Distance(a, b),
		Remarks: []string{},
	}

	if Normalize(a) == Normalize(b) {
		result.Remarks = append(result.Remarks, RemarkIdentical)
		return result
	}

	shared := Intersect(Tokenize(a), Tokenize(b))
	if len(shared) == 0 || oracle == nil {
		return result
	}

	unknown := oracle.Unknown(shared)
	tokens := make([]string, 0, len(unknown))
	for token := range unknown {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		result.Remarks = append(result.Remarks, SharedNonWordRemark(token))
	}
	return result
}

// Normalize folds case and trims surrounding whitespace.
func Normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(text))
}

// Tokenize returns the set of lower-cased ASCII words in text.
//
// Text is split into Unicode word runs (letters, numbers, underscore) and a
// run is a token only if it consists of a-z alone, so "café" or "abc123"
// yield nothing rather than a fragment.
func Tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	runs := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	for _, run := range runs {
		if isASCIILower(run) {
			tokens[run] = struct{}{}
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isASCIILower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return s != ""
}

// Intersect returns the tokens present in both sets.
func Intersect(a, b map[string]struct{}) map[string]struct{} {
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := make(map[string]struct{})
	for w := range a {
		if _, ok := b[w]; ok {
			shared[w] = struct{}{}
		}
	}
	return shared
}

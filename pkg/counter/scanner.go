package counter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/locstat/core/pkg/domain"
)

const (
	// DefaultWorkers indicates that the scanner should use GOMAXPROCS as the
	// worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default run timeout duration.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
)

// DefaultSkipDirs contains directory names skipped during discovery.
var DefaultSkipDirs = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"vendor",
	"__pycache__",
	".cache",
}

var (
	// ErrCountCancelled is returned when a run is cancelled via context.
	ErrCountCancelled = errors.New("counter: count cancelled")
	// ErrCountTimeout is returned when a run exceeds the timeout duration.
	ErrCountTimeout = errors.New("counter: count timeout")
	// ErrWorkerCrashed wraps a recovered worker panic. A run that crashed a
	// worker produces no totals; partial results would be silently wrong.
	ErrWorkerCrashed = errors.New("counter: worker crashed")
	// ErrInvalidEncoding marks a file whose content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid utf-8 content")
)

// Phases a CountError can occur in.
const (
	PhaseDiscovery = "discovery"
	PhaseRead      = "read"
	PhaseCount     = "count"
)

// CountError records a non-fatal error for a single path. Files that fail
// contribute nothing to the totals; the run continues.
type CountError struct {
	// Err is the underlying error.
	Err error

	// Path is the file path where the error occurred (may be empty for
	// walk-level errors).
	Path string

	// Phase indicates where the error occurred: PhaseDiscovery, PhaseRead
	// or PhaseCount.
	Phase string
}

// Error implements the error interface.
func (e CountError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e CountError) Unwrap() error {
	return e.Err
}

// Stats provides statistics about a run.
type Stats struct {
	// FilesScanned is the number of work items produced by discovery.
	FilesScanned int

	// FilesCounted is the number of files successfully classified.
	FilesCounted int

	// FilesFailed is the number of files that could not be read.
	FilesFailed int

	// Duration is the total run duration.
	Duration time.Duration
}

// Result contains the outcome of a run.
type Result struct {
	// Totals holds the per-language aggregates, ordered by the configured
	// sort key.
	Totals []domain.LanguageTotal

	// Errors contains non-fatal per-file errors encountered during the run.
	Errors []CountError

	// Stats provides run statistics.
	Stats Stats
}

// Sum returns the grand total across all languages.
func (r *Result) Sum() domain.LanguageTotal {
	return domain.Sum(r.Totals)
}

// workItem is one file to classify, tagged with its language spec at
// discovery time. Consumed exactly once by exactly one worker.
type workItem struct {
	path string
	spec *domain.LanguageSpec
	size int64
}

// Scanner walks a directory tree and counts lines per language using a fixed
// pool of workers.
type Scanner struct {
	options *Options
}

// NewScanner creates a new scanner with the given options.
func NewScanner(opts ...Option) *Scanner {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Scanner{options: options}
}

// Count performs the complete run:
//  1. Discover countable files under root
//  2. Classify them with a fixed worker pool
//  3. Aggregate per-worker results into per-language totals
//
// Per-file errors are collected in the result and never abort the run. A
// crashed worker aborts the run with an error wrapping ErrWorkerCrashed.
func (s *Scanner) Count(ctx context.Context, root string) (*Result, error) {
	startTime := time.Now()

	if err := validatePatterns(s.options.Include); err != nil {
		return nil, err
	}
	if err := validatePatterns(s.options.Exclude); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	result := &Result{
		Totals: []domain.LanguageTotal{},
		Errors: []CountError{},
	}

	items, discoveryErrs := s.discover(ctx, root)
	result.Errors = append(result.Errors, discoveryErrs...)
	result.Stats.FilesScanned = len(items)

	counts, countErrs, err := s.countParallel(ctx, items)
	if err != nil {
		return nil, err
	}
	result.Errors = append(result.Errors, countErrs...)

	result.Totals = Aggregate(counts)
	domain.SortTotals(result.Totals, s.options.SortBy)

	result.Stats.FilesCounted = len(counts)
	result.Stats.FilesFailed = len(countErrs)
	result.Stats.Duration = time.Since(startTime)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrCountTimeout
		}
		if errors.Is(err, context.Canceled) {
			return result, ErrCountCancelled
		}
	}

	return result, nil
}

// discover walks root and yields one work item per countable file. Unknown
// extensions are silently skipped; that is a registry miss, not an error.
func (s *Scanner) discover(ctx context.Context, root string) ([]workItem, []CountError) {
	skipSet := buildSkipSet(DefaultSkipDirs)

	var (
		items []workItem
		errs  []CountError
	)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, CountError{
				Err:   walkErr,
				Path:  path,
				Phase: PhaseDiscovery,
			})
			return nil
		}

		if d.IsDir() {
			if shouldSkipDir(path, root, skipSet) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if ext == "" {
			return nil
		}
		if len(s.options.Extensions) > 0 && !containsFold(s.options.Extensions, ext) {
			return nil
		}

		spec, ok := s.options.Registry.Lookup(ext)
		if !ok {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			errs = append(errs, CountError{
				Err:   fmt.Errorf("compute relative path: %w", err),
				Path:  path,
				Phase: PhaseDiscovery,
			})
			return nil
		}

		if len(s.options.Exclude) > 0 && matchesAnyPattern(relPath, s.options.Exclude) {
			return nil
		}
		if len(s.options.Include) > 0 && !matchesAnyPattern(relPath, s.options.Include) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			errs = append(errs, CountError{
				Err:   fmt.Errorf("stat: %w", err),
				Path:  path,
				Phase: PhaseDiscovery,
			})
			return nil
		}
		if s.options.MaxFileSize > 0 && info.Size() > s.options.MaxFileSize {
			return nil
		}

		items = append(items, workItem{path: path, spec: spec, size: info.Size()})
		return nil
	})

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		errs = append(errs, CountError{Err: err, Phase: PhaseDiscovery})
	}

	return items, errs
}

// countParallel distributes items over a fixed pool of workers. The producer
// pushes every item into a shared channel and closes it; the close is the
// termination signal, observed by each worker only after all items have been
// consumed. Each worker appends to its own slice, so no result state is
// shared until the pool is joined.
func (s *Scanner) countParallel(ctx context.Context, items []workItem) ([]domain.FileCount, []CountError, error) {
	if len(items) == 0 {
		return nil, nil, nil
	}

	workers := s.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan workItem)
	perWorker := make([][]domain.FileCount, workers)
	perWorkerErrs := make([][]CountError, workers)

	g, gCtx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		w := w

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: worker %d: %v", ErrWorkerCrashed, w, r)
				}
			}()

			for item := range jobs {
				count, countErr := s.countFile(gCtx, item)
				if countErr != nil {
					perWorkerErrs[w] = append(perWorkerErrs[w], *countErr)
					continue
				}
				perWorker[w] = append(perWorker[w], count)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for _, item := range items {
			select {
			case jobs <- item:
			case <-gCtx.Done():
				return nil
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var (
		counts []domain.FileCount
		errs   []CountError
	)
	for w := 0; w < workers; w++ {
		counts = append(counts, perWorker[w]...)
		errs = append(errs, perWorkerErrs[w]...)
	}
	return counts, errs, nil
}

// countFile reads and classifies a single file. Read failures (permissions,
// vanished file, non-UTF-8 content) are reported as CountErrors and skipped.
func (s *Scanner) countFile(ctx context.Context, item workItem) (domain.FileCount, *CountError) {
	if err := ctx.Err(); err != nil {
		return domain.FileCount{}, &CountError{Err: err, Path: item.path, Phase: PhaseCount}
	}

	content, err := os.ReadFile(item.path)
	if err != nil {
		return domain.FileCount{}, &CountError{Err: err, Path: item.path, Phase: PhaseRead}
	}
	if !utf8.Valid(content) {
		return domain.FileCount{}, &CountError{Err: ErrInvalidEncoding, Path: item.path, Phase: PhaseRead}
	}

	count := Classify(content, item.spec)
	count.Size = item.size
	return count, nil
}

func buildSkipSet(names []string) map[string]bool {
	skipSet := make(map[string]bool, len(names))
	for _, n := range names {
		skipSet[n] = true
	}
	return skipSet
}

func shouldSkipDir(path, root string, skipSet map[string]bool) bool {
	if path == root {
		return false
	}
	return skipSet[filepath.Base(path)]
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimPrefix(v, "."), s) {
			return true
		}
	}
	return false
}

// validatePatterns rejects malformed globs before any work starts. A bad
// pattern would otherwise match nothing and yield an empty, plausible-looking
// report; that is a fatal flag error, not a per-file one.
func validatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// matchesAnyPattern assumes patterns were validated when the run started.
func matchesAnyPattern(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// Count runs a scan of root with the given options.
func Count(ctx context.Context, root string, opts ...Option) (*Result, error) {
	scanner := NewScanner(opts...)
	return scanner.Count(ctx, root)
}

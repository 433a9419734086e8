package counter

import (
	"time"

	"github.com/locstat/core/pkg/domain"
	"github.com/locstat/core/pkg/language"
)

// Options configures scanner behavior.
type Options struct {
	// Exclude holds glob patterns (doublestar syntax, matched against the
	// slash-separated path relative to the root); matching files are skipped.
	Exclude []string

	// Extensions restricts counting to the listed file extensions (without
	// dot). Empty means every registered extension is counted.
	Extensions []string

	// Include holds glob patterns; when non-empty, only matching files are
	// counted.
	Include []string

	// MaxFileSize is the maximum file size in bytes to count. Zero or
	// negative means no limit.
	MaxFileSize int64

	// Registry resolves extensions to language specs.
	// If nil, language.Default() is used.
	Registry *language.Registry

	// SortBy orders the aggregated totals. Defaults to SortByLanguage.
	SortBy domain.SortKey

	// Timeout is the maximum duration for the entire run.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Workers is the number of counting workers. Zero or negative values use
	// runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring a Scanner.
type Option func(*Options)

// WithWorkers sets the number of counting workers.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the run timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithInclude sets glob patterns that files must match to be counted.
func WithInclude(patterns []string) Option {
	return func(o *Options) {
		o.Include = patterns
	}
}

// WithExclude sets glob patterns for files to skip.
func WithExclude(patterns []string) Option {
	return func(o *Options) {
		o.Exclude = patterns
	}
}

// WithExtensions restricts counting to the given extensions.
func WithExtensions(exts []string) Option {
	return func(o *Options) {
		o.Extensions = exts
	}
}

// WithMaxFileSize sets the maximum file size to count.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		o.MaxFileSize = size
	}
}

// WithRegistry sets the language registry to use.
func WithRegistry(r *language.Registry) Option {
	return func(o *Options) {
		o.Registry = r
	}
}

// WithSortBy sets the sort key for aggregated totals.
func WithSortBy(key domain.SortKey) Option {
	return func(o *Options) {
		o.SortBy = key
	}
}

func applyDefaults(opts *Options) {
	if opts.Registry == nil {
		opts.Registry = language.Default()
	}
	if opts.SortBy == "" {
		opts.SortBy = domain.SortByLanguage
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
}

// Package domain defines the core types for line counting results.
package domain

// Delimiter is a block-comment start/end token pair. Start and End may be the
// same token (Perl "=", Python triple quotes).
type Delimiter struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// LanguageSpec describes a language's name, file extensions, and comment
// syntax. Specs are built once before any worker starts and shared read-only
// across goroutines; nothing mutates them afterwards.
type LanguageSpec struct {
	// Name is the display name and the aggregation key. Unique per registry.
	Name string `toml:"name"`

	// Extensions are the file extensions (without the dot) mapped to this
	// language. Multiple extensions may map to the same spec.
	Extensions []string `toml:"extensions"`

	// SingleLine contains line-comment prefixes, checked in list order.
	// More specific markers ("///") should precede their prefixes ("//").
	SingleLine []string `toml:"single"`

	// MultiLine contains block-comment delimiter pairs, checked in list order.
	MultiLine []Delimiter `toml:"multi"`
}

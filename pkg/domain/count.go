package domain

import (
	"fmt"
	"sort"
	"strings"
)

// FileCount is the classification result for a single file.
// It is owned by the worker that produced it until aggregation.
type FileCount struct {
	// Language is the name of the LanguageSpec the file was classified under.
	Language string `json:"language"`
	// Blank is the number of whitespace-only lines.
	Blank int `json:"blank"`
	// Comment is the number of comment lines.
	Comment int `json:"comment"`
	// Code is the number of remaining lines.
	Code int `json:"code"`
	// Size is the file size in bytes, taken from filesystem metadata.
	Size int64 `json:"size"`
}

// LanguageTotal aggregates FileCounts sharing a language name.
// Files equals the number of FileCount records merged in.
type LanguageTotal struct {
	Language string `json:"language"`
	Code     int    `json:"code"`
	Comment  int    `json:"comment"`
	Blank    int    `json:"blank"`
	Files    int    `json:"files"`
	Size     int64  `json:"size"`
}

// Sum collapses totals into a single grand total across all languages.
// The Language field of the result is empty.
func Sum(totals []LanguageTotal) LanguageTotal {
	var sum LanguageTotal
	for _, t := range totals {
		sum.Code += t.Code
		sum.Comment += t.Comment
		sum.Blank += t.Blank
		sum.Files += t.Files
		sum.Size += t.Size
	}
	return sum
}

// SortKey selects the column that orders aggregated totals.
type SortKey string

// Supported sort keys. SortByLanguage orders ascending by name; every other
// key orders descending by its column.
const (
	SortByLanguage SortKey = "language"
	SortByCode     SortKey = "code"
	SortByComment  SortKey = "comment"
	SortByBlank    SortKey = "blank"
	SortByFiles    SortKey = "file"
	SortBySize     SortKey = "size"
)

// ParseSortKey converts a user-supplied string to a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(s)); key {
	case SortByLanguage, SortByCode, SortByComment, SortByBlank, SortByFiles, SortBySize:
		return key, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want language | code | comment | blank | file | size)", s)
	}
}

// SortTotals orders totals in place by the given key. The sort is stable and
// ties break by language name, so output is deterministic regardless of the
// order files were processed in.
func SortTotals(totals []LanguageTotal, key SortKey) {
	sort.SliceStable(totals, func(i, j int) bool {
		a, b := totals[i], totals[j]
		switch key {
		case SortByCode:
			if a.Code != b.Code {
				return a.Code > b.Code
			}
		case SortByComment:
			if a.Comment != b.Comment {
				return a.Comment > b.Comment
			}
		case SortByBlank:
			if a.Blank != b.Blank {
				return a.Blank > b.Blank
			}
		case SortByFiles:
			if a.Files != b.Files {
				return a.Files > b.Files
			}
		case SortBySize:
			if a.Size != b.Size {
				return a.Size > b.Size
			}
		}
		return a.Language < b.Language
	})
}

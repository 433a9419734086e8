// Package counter implements the line counting core: per-file line
// classification and a concurrent scanner that walks a directory tree,
// counts files in parallel, and aggregates per-language totals.
package counter

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/locstat/core/pkg/domain"
)

// Classify counts blank, comment, and code lines in content according to the
// language's comment syntax. It is a single pass over the lines; each line is
// trimmed of surrounding whitespace before evaluation. Block comment state is
// local to the call and never carries across files.
//
// Delimiter pairs and single-line markers are checked in registry order and
// the first match wins. A pair whose start token equals its end token ("'''",
// "=") only closes on the opening line when the line is long enough to hold
// both tokens; a shorter line leaves the block open.
//
// The returned count carries the spec's name; Size is left zero for the
// caller to fill from file metadata.
func Classify(content []byte, spec *domain.LanguageSpec) domain.FileCount {
	count := domain.FileCount{Language: spec.Name}

	// A block comment stays open across lines until its end token closes it.
	var open *domain.Delimiter

	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(nil, len(content)+1)

lines:
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if line == "" {
			count.Blank++
			continue
		}

		for i := range spec.MultiLine {
			d := &spec.MultiLine[i]
			if open != nil && open != d {
				continue
			}

			// A block may open and close on the same line.
			sameLine := false

			if strings.HasPrefix(line, d.Start) {
				if open != nil {
					count.Comment++
					open = nil
					continue lines
				}
				sameLine = true
				open = d
			}

			if open != nil {
				count.Comment++
				if strings.HasSuffix(line, d.End) {
					// When start == end, a line shorter than both tokens has
					// matched itself; it opens the block rather than closing it.
					if !sameLine || len(line) >= len(d.Start)+len(d.End) {
						open = nil
					}
				}
				continue lines
			}
		}

		for _, marker := range spec.SingleLine {
			if strings.HasPrefix(line, marker) {
				count.Comment++
				continue lines
			}
		}

		count.Code++
	}

	return count
}

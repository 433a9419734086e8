// Package report renders aggregated language totals as a table, HTML, or
// Markdown document.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/locstat/core/pkg/domain"
)

// Format selects the output document type.
type Format string

// Supported output formats.
const (
	FormatTable    Format = "table"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat converts a user-supplied string to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatHTML, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table | html | markdown)", s)
	}
}

var columns = []string{"Language", "Code", "Comment", "Blank", "File", "Size"}

// Renderer writes formatted reports to a writer. Totals are rendered in the
// order given; sorting is the caller's concern.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes totals plus a grand total row in the given format.
func (r *Renderer) Render(totals []domain.LanguageTotal, format Format) error {
	switch format {
	case FormatHTML:
		return r.html(totals)
	case FormatMarkdown:
		return r.markdown(totals)
	default:
		return r.table(totals)
	}
}

// row flattens one total into display cells.
func row(language string, t domain.LanguageTotal) []string {
	return []string{
		language,
		humanize.Comma(int64(t.Code)),
		humanize.Comma(int64(t.Comment)),
		humanize.Comma(int64(t.Blank)),
		humanize.Comma(int64(t.Files)),
		humanize.IBytes(uint64(t.Size)),
	}
}

func (r *Renderer) table(totals []domain.LanguageTotal) error {
	const line = "─"

	if _, err := fmt.Fprintf(r.w, "┌%s┐\n", strings.Repeat(line, 78)); err != nil {
		return err
	}
	printRow := func(cells []string) error {
		_, err := fmt.Fprintf(r.w, "│ %-14s%12s%12s%12s%12s%14s │\n",
			cells[0], cells[1], cells[2], cells[3], cells[4], cells[5])
		return err
	}

	if err := printRow(columns); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.w, "├%s┤\n", strings.Repeat(line, 78)); err != nil {
		return err
	}

	for _, t := range totals {
		if err := printRow(row(t.Language, t)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.w, "├%s┤\n", strings.Repeat(line, 78)); err != nil {
		return err
	}
	if err := printRow(row("Total", domain.Sum(totals))); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.w, "└%s┘\n", strings.Repeat(line, 78))
	return err
}

func (r *Renderer) html(totals []domain.LanguageTotal) error {
	var b strings.Builder

	b.WriteString("<table>\n  <thead>\n    <tr>\n")
	for _, col := range columns {
		fmt.Fprintf(&b, "      <th>%s</th>\n", col)
	}
	b.WriteString("    </tr>\n  </thead>\n  <tbody>\n")

	writeRow := func(cells []string) {
		b.WriteString("    <tr>\n")
		for _, cell := range cells {
			fmt.Fprintf(&b, "      <td>%s</td>\n", cell)
		}
		b.WriteString("    </tr>\n")
	}

	for _, t := range totals {
		writeRow(row(t.Language, t))
	}
	b.WriteString("  </tbody>\n  <tfoot>\n")
	writeRow(row("Total", domain.Sum(totals)))
	b.WriteString("  </tfoot>\n</table>\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) markdown(totals []domain.LanguageTotal) error {
	var b strings.Builder

	writeRow := func(cells []string) {
		fmt.Fprintf(&b, "| %-14s | %-12s | %-12s | %-12s | %-12s | %-14s |\n",
			cells[0], cells[1], cells[2], cells[3], cells[4], cells[5])
	}

	writeRow(columns)
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
		strings.Repeat("-", 14), strings.Repeat("-", 12), strings.Repeat("-", 12),
		strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 14))

	for _, t := range totals {
		writeRow(row(t.Language, t))
	}
	writeRow(row("Total", domain.Sum(totals)))

	_, err := io.WriteString(r.w, b.String())
	return err
}

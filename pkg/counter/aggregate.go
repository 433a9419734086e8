package counter

import (
	"sort"

	"github.com/locstat/core/pkg/domain"
)

// Aggregate merges per-file counts into one total per language name. The
// reduction is plain integer sums plus a file counter, so it is commutative
// and associative: totals do not depend on worker count or on the order the
// files were processed in. Returned totals are in name order; callers pick
// their own ordering with domain.SortTotals.
func Aggregate(counts []domain.FileCount) []domain.LanguageTotal {
	byName := make(map[string]*domain.LanguageTotal)

	for _, c := range counts {
		total, ok := byName[c.Language]
		if !ok {
			total = &domain.LanguageTotal{Language: c.Language}
			byName[c.Language] = total
		}
		total.Code += c.Code
		total.Comment += c.Comment
		total.Blank += c.Blank
		total.Size += c.Size
		total.Files++
	}

	totals := make([]domain.LanguageTotal, 0, len(byName))
	for _, t := range byName {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Language < totals[j].Language
	})
	return totals
}

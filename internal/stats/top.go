package stats

import (
	"sort"

	"github.com/verte-zerg/wordrush/internal/model"
)

// TopMissed returns the n most missed words, ties broken alphabetically.
func TopMissed(aggs []model.WordAggregate, n int) []model.WordAggregate {
	if n <= 0 || len(aggs) == 0 {
		return nil
	}
	items := make([]model.WordAggregate, len(aggs))
	copy(items, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Misses == items[j].Misses {
			return items[i].Word < items[j].Word
		}
		return items[i].Misses > items[j].Misses
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

package repositories

import (
	"sort"
	"time"
)

func sortByLatest[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return at(items[i]).After(at(items[j]))
	})
}

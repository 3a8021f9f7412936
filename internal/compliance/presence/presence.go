// Package presence collapses a traveler's intervals into the set of calendar
// dates that count toward the quota.
package presence

import (
	"slices"
	"sort"
	"strings"

	"staywatch/internal/compliance/models"
)

// Set is an immutable, sorted, duplicate-free set of presence dates.
// Overlapping or touching intervals contribute each date once.
type Set struct {
	dates []models.Date
}

// NewSet builds a Set from arbitrary dates.
func NewSet(dates ...models.Date) Set {
	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, models.Date.Compare)
	return Set{dates: slices.Compact(sorted)}
}

func (s Set) Len() int { return len(s.dates) }

// Dates returns a copy of the dates in ascending order.
func (s Set) Dates() []models.Date { return slices.Clone(s.dates) }

// Contains reports whether d is a presence day.
func (s Set) Contains(d models.Date) bool {
	_, found := slices.BinarySearchFunc(s.dates, d, models.Date.Compare)
	return found
}

// CountBetween counts presence days in [from, to], both inclusive.
func (s Set) CountBetween(from, to models.Date) int {
	if to.Before(from) {
		return 0
	}
	lo := sort.Search(len(s.dates), func(i int) bool { return !s.dates[i].Before(from) })
	hi := sort.Search(len(s.dates), func(i int) bool { return s.dates[i].After(to) })
	return hi - lo
}

// Last returns the latest presence day, or false for an empty set.
func (s Set) Last() (models.Date, bool) {
	if len(s.dates) == 0 {
		return models.Date{}, false
	}
	return s.dates[len(s.dates)-1], true
}

// Builder turns intervals into a Set, skipping excluded territories.
// A Builder is safe for concurrent use once constructed.
type Builder struct {
	excluded map[string]struct{}
}

// Option configures a Builder.
type Option func(*Builder)

// WithExcludedTerritories marks territories, by code or name, whose presence
// does not count toward the quota. Matching is case-insensitive.
func WithExcludedTerritories(territories ...string) Option {
	return func(b *Builder) {
		for _, t := range territories {
			if key := normalizeTerritory(t); key != "" {
				b.excluded[key] = struct{}{}
			}
		}
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{excluded: make(map[string]struct{})}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IsExcluded reports whether presence in territory is ignored.
func (b *Builder) IsExcluded(territory string) bool {
	_, ok := b.excluded[normalizeTerritory(territory)]
	return ok
}

// Build returns the presence set for one traveler's intervals, in any order.
// A malformed interval fails the whole build; it is never coerced.
func (b *Builder) Build(intervals []models.TravelInterval) (Set, error) {
	total := 0
	for _, iv := range intervals {
		if err := iv.Validate(); err != nil {
			return Set{}, err
		}
		if !b.IsExcluded(iv.Territory) {
			total += iv.Days()
		}
	}

	dates := make([]models.Date, 0, total)
	for _, iv := range intervals {
		if b.IsExcluded(iv.Territory) {
			continue
		}
		for d := iv.EntryDate; !d.After(iv.ExitDate); d = d.AddDays(1) {
			dates = append(dates, d)
		}
	}
	return NewSet(dates...), nil
}

func normalizeTerritory(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

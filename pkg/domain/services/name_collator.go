package services

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no collation locale is configured
const DefaultLocale = "es"

// NameCollator orders display names the way a person reading the report
// expects (accents and case handled by the locale), not by byte value.
// A NameCollator is not safe for concurrent use.
type NameCollator struct {
	collator *collate.Collator
}

// NewNameCollator creates a collator for the given BCP 47 locale, falling
// back to DefaultLocale when the tag cannot be parsed
func NewNameCollator(locale string) *NameCollator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &NameCollator{
		collator: collate.New(tag),
	}
}

// Compare returns -1, 0 or 1 as a sorts before, with or after b
func (nc *NameCollator) Compare(a, b string) int {
	return nc.collator.CompareString(a, b)
}

// Less reports whether a sorts strictly before b
func (nc *NameCollator) Less(a, b string) bool {
	return nc.Compare(a, b) < 0
}

// SortBy stably sorts items by the display name returned by key
func SortBy[T any](nc *NameCollator, items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return nc.Less(key(items[i]), key(items[j]))
	})
}

package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortField names a character attribute that can be sorted on.
type SortField string

// Sortable fields.
const (
	SortByName  SortField = "name"
	SortByAge   SortField = "age"
	SortByHouse SortField = "house"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort directions.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Defaults applied when a sort request leaves a value empty.
const (
	DefaultSortField = SortByName
	DefaultSortOrder = SortAsc
)

// characterComparators is the dispatch table from field name to ordering.
// Text compares case-insensitively; empty strings sort first.
var characterComparators = map[SortField]func(a, b *Character) int{
	SortByName: func(a, b *Character) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	SortByHouse: func(a, b *Character) int {
		return cmp.Compare(strings.ToLower(a.House), strings.ToLower(b.House))
	},
	SortByAge: func(a, b *Character) int {
		return cmp.Compare(a.Age, b.Age)
	},
}

// ParseSortField returns the SortField named by s, or DefaultSortField when s is empty.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return DefaultSortField, nil
	}
	f := SortField(s)
	if _, ok := characterComparators[f]; !ok {
		return "", NewValidationError("sort_by", fmt.Sprintf("must be one of name, age, house; got %q", s))
	}
	return f, nil
}

// ParseSortOrder returns the SortOrder named by s, or DefaultSortOrder when s is empty.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return DefaultSortOrder, nil
	case SortAsc, SortDesc:
		return SortOrder(s), nil
	default:
		return "", NewValidationError("sort_order", fmt.Sprintf("must be one of asc, desc; got %q", s))
	}
}

// SortCharacters stably sorts chars in place. Ties keep their input order in
// both directions, since descending negates the comparison rather than
// reversing the result.
func SortCharacters(chars []Character, field SortField, order SortOrder) error {
	compare, ok := characterComparators[field]
	if !ok {
		return NewValidationError("sort_by", fmt.Sprintf("unsupported sort field %q", field))
	}
	if order == SortDesc {
		asc := compare
		compare = func(a, b *Character) int { return -asc(a, b) }
	}
	slices.SortStableFunc(chars, func(a, b Character) int {
		return compare(&a, &b)
	})
	return nil
}

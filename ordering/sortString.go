package ordering

import (
	"sort"
	"strings"
)

var _ sort.Interface = (*unitList)(nil)

// unitList is a list of declarations that *can* be sorted by member name.
//
// Implement sort.Interface
type unitList []*unit

// Len returns the length of the list.
func (s unitList) Len() int {
	return len(s)
}

// Swap swaps the elements with indexes i and j.
func (s unitList) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// Less reports whether the element with index i should sort before the
// element with index j. Names compare without case.
func (s unitList) Less(i, j int) bool {
	return strings.ToLower(s[i].feature.Name) < strings.ToLower(s[j].feature.Name)
}

// Sort sorts the list, keeping the original order of equal names.
func (s unitList) Sort() {
	sort.Stable(s)
}

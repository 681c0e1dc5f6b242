package ordering

import "strings"

// unit is a declaration with the standalone comments that travel with it.
type unit struct {
	comments   []*Feature
	feature    *Feature
	blankAfter bool // a blank line followed the declaration
}

// BucketOrder returns the buckets in rendering order: the configured ones
// first, then the missing ones in default order, then unclassified members.
func BucketOrder(cfg Config) []Order {
	seen := make(map[Order]bool, len(DefaultOrder)+1)
	order := make([]Order, 0, len(DefaultOrder)+1)
	add := func(o Order) {
		if !seen[o] {
			seen[o] = true
			order = append(order, o)
		}
	}
	known := make(map[Order]bool, len(DefaultOrder))
	for _, o := range DefaultOrder {
		known[o] = true
	}
	for _, o := range cfg.MemberOrdering {
		if known[o] {
			add(o)
		}
	}
	for _, o := range DefaultOrder {
		add(o)
	}
	add(unclassified)
	return order
}

// Reorder returns the new body of a class whose features were found by
// FindFeatures. Bodies that cannot be reordered are returned unchanged.
func Reorder(class *Class, cfg Config) string {
	features := class.Features
	if class.fixed || len(features) == 0 {
		return class.body
	}

	// the last line holds the indentation of the closing brace
	tail := features[len(features)-1].Lines[0].Text
	features = features[:len(features)-1]

	var (
		units   []*unit
		pending []*Feature
	)
	for _, f := range features {
		switch f.Type {
		case BlankLine:
			if len(units) > 0 && len(pending) == 0 {
				units[len(units)-1].blankAfter = true
			}
		case MultiLineComment:
			pending = append(pending, f)
		default:
			units = append(units, &unit{comments: pending, feature: f})
			pending = nil
		}
	}
	if len(units) == 0 {
		return class.body
	}
	trailingBlank := len(features) > 0 && features[len(features)-1].Type == BlankLine

	order := BucketOrder(cfg)
	index := make(map[Order]int, len(order))
	for i, o := range order {
		index[o] = i
	}
	groups := make([]unitList, len(order))
	for _, u := range units {
		i := index[bucketOf[u.feature.Type]]
		groups[i] = append(groups[i], u)
	}
	for i, o := range order {
		if o == PublicOtherMethods || o == PrivateOtherMethods {
			groups[i] = arrangeMethods(groups[i], cfg)
		}
	}

	blank := ""
	if class.crlf {
		blank = "\r"
	}
	var out []string
	emit := func(f *Feature) {
		for _, l := range f.Lines {
			out = append(out, l.Text)
		}
	}
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, blank)
		}
		for i, u := range group {
			if i > 0 && spaced(group[i-1], u) {
				out = append(out, blank)
			}
			for _, c := range u.comments {
				emit(c)
				out = append(out, blank)
			}
			emit(u.feature)
		}
	}
	// comments that precede no declaration stay at the end
	for _, c := range pending {
		out = append(out, blank)
		emit(c)
	}
	if trailingBlank {
		out = append(out, blank)
	}
	out = append(out, tail)

	return class.head + "\n" + strings.Join(out, "\n")
}

// spaced reports whether a blank line separates two consecutive
// declarations of the same bucket.
func spaced(prev, next *unit) bool {
	return prev.blankAfter ||
		prev.feature.unterminated ||
		prev.feature.multiline ||
		next.feature.multiline
}

// arrangeMethods applies the sorting and getter grouping options to an
// other-methods bucket.
func arrangeMethods(group unitList, cfg Config) unitList {
	if cfg.SortOtherMethods {
		group.Sort()
	}
	if !cfg.GroupAndSortGetterMethods {
		return group
	}
	var getters, others unitList
	for _, u := range group {
		if u.feature.Type == GetterMethod {
			getters = append(getters, u)
		} else {
			others = append(others, u)
		}
	}
	getters.Sort()
	return append(getters, others...)
}

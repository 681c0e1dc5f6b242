package ordering

import "sort"

// NewEdit returns the edit replacing the body of class with body, or nil
// when body is the current text.
func NewEdit(src string, class *Class, body string) *Edit {
	if src[class.Start:class.End] == body {
		return nil
	}
	return &Edit{
		Start: class.Start,
		End:   class.End,
		Text:  body,
		Class: class.Name,
		Line:  class.OpenLine + 1,
	}
}

// Apply returns src with the non overlapping edits applied.
func Apply(src string, edits []Edit) string {
	if len(edits) == 0 {
		return src
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})
	out := src
	for _, e := range sorted {
		out = out[:e.Start] + e.Text + out[e.End:]
	}
	return out
}

package ordering

import (
	"errors"
	"sort"
)

// Result is the outcome of Process on one source buffer.
type Result struct {
	// Classes that were parsed, in source order.
	Classes []*Class

	// Edits to apply, one per changed class, in source order.
	Edits []Edit

	// Errors of the classes that were skipped, by line.
	Errors []*ParseError
}

// Err joins the parse errors, or returns nil.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Process finds the classes of src and computes the edit that reorders each
// of them. A class that fails to parse is reported and left untouched; the
// other classes are still processed.
func Process(src string, cfg Config) *Result {
	classes, errs := FindClasses(src)
	res := &Result{Errors: errs}
	for _, class := range classes {
		if _, err := FindFeatures(src, class, cfg); err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				res.Errors = append(res.Errors, perr)
			}
			continue
		}
		res.Classes = append(res.Classes, class)
		if edit := NewEdit(src, class, Reorder(class, cfg)); edit != nil {
			res.Edits = append(res.Edits, *edit)
		}
	}
	sort.SliceStable(res.Errors, func(i, j int) bool {
		return res.Errors[i].Line < res.Errors[j].Line
	})
	return res
}

// Classify returns every body line of every class of src with the type of
// the feature it belongs to. Lines of classes that fail to parse are left
// out and their errors joined in err.
func Classify(src string, cfg Config) ([]ClassifiedLine, error) {
	res := Process(src, cfg)
	var lines []ClassifiedLine
	for _, class := range res.Classes {
		for _, f := range class.Features {
			for _, l := range f.Lines {
				lines = append(lines, ClassifiedLine{
					Text:  l.Text,
					Line:  l.Index,
					Type:  l.Type,
					Class: class.Name,
				})
			}
		}
	}
	return lines, res.Err()
}

// ReorderSource reorders the classes of config.Src and returns the new
// content, or a unified diff when config.Diff is set. Classes that fail to
// parse are kept as they are and reported in the returned error, along with
// the reordered content.
func ReorderSource(config ReorderConfig) (string, error) {
	content := string(config.Src)
	res := Process(content, config.Config)
	if len(res.Classes) == 0 && len(res.Errors) == 0 {
		return content, ErrNoClassesFound
	}

	output := Apply(content, res.Edits)
	err := res.Err()
	if config.Diff {
		diff, derr := UnifiedDiff(content, output, config.Filename)
		if derr != nil {
			return content, derr
		}
		return diff, err
	}
	return output, err
}

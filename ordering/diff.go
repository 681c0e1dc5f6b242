package ordering

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff returns the unified diff between content and newcontent, with
// "a/" and "b/" prefixed file names so that it applies with patch -p1. It is
// empty when nothing changed.
func UnifiedDiff(content, newcontent, filename string) (string, error) {
	if content == newcontent {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(content),
		B:        difflib.SplitLines(newcontent),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  3,
	})
}

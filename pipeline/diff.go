package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// Diff compares the Original names of a dictionary with the table header of
// a raw export. Removed lines are dictionary names missing from the file,
// added lines are file columns the dictionary does not list.
func Diff(file string, dict *gait.Dictionary) ([]DiffLine, error) {
	if err := requireArg(file, "csv path"); err != nil {
		return nil, err
	}
	if dict == nil {
		return nil, fmt.Errorf("dictionary is required")
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	header, err := gait.ReadColumnNames(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return diffNames(dict.Original, header), nil
}

func diffNames(a, b []string) []DiffLine {
	out := []DiffLine{}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		if op.Tag == 'd' || op.Tag == 'r' {
			for i := op.I1; i < op.I2; i++ {
				out = append(out, DiffLine{Sign: "-", OldIndex: intPtr(i), Text: a[i]})
			}
		}
		if op.Tag == 'i' || op.Tag == 'r' {
			for j := op.J1; j < op.J2; j++ {
				out = append(out, DiffLine{Sign: "+", NewIndex: intPtr(j), Text: b[j]})
			}
		}
	}
	return out
}

// FormatDiff renders lines as "- | 12        | name".
func FormatDiff(lines []DiffLine) string {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%s | %-4s %-4s | %s\n", l.Sign, indexText(l.OldIndex), indexText(l.NewIndex), l.Text)
	}
	return b.String()
}

func indexText(i *int) string {
	if i == nil {
		return ""
	}
	return fmt.Sprint(*i)
}

func intPtr(v int) *int { return &v }

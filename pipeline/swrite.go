package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// SelectionWrite stores a selection in a recording's header and strips the
// personal name fields. The rest of the file is copied unchanged.
func SelectionWrite(opts SelectionWriteOptions) (*SelectionWriteResult, error) {
	if err := requireArg(opts.File, "csv path"); err != nil {
		return nil, err
	}
	if err := requireArg(opts.SaveDir, "save directory"); err != nil {
		return nil, err
	}
	selection := strings.TrimSpace(opts.Selection)
	if _, err := gait.ParseSelections(selection); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.SaveDir, 0o755); err != nil {
		return nil, err
	}
	out := filepath.Join(opts.SaveDir, filepath.Base(opts.File))
	if err := writeSelection(opts.File, out, selection); err != nil {
		return nil, err
	}
	return &SelectionWriteResult{File: out}, nil
}

func writeSelection(src, dst, selection string) error {
	if sameFile(src, dst) {
		return fmt.Errorf("%s: output would overwrite the input", src)
	}
	return gait.RewriteHeader(src, dst, func(h *gait.Header) error {
		h.Set(gait.FieldSelection, selection)
		h.Drop(gait.NameFields...)
		return nil
	})
}

func sameFile(a, b string) bool {
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}

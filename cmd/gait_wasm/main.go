//go:build js && wasm

package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
	"syscall/js"
	"time"

	gait "github.com/lucasjlepore/gait-analyzer"
	"github.com/lucasjlepore/gait-analyzer/pipeline"
)

func main() {
	js.Global().Set("analyzeGait", js.FuncOf(analyzeGait))
	select {}
}

// analyzeGait(fileBytes, options[, dictionaryBytes]) returns
// {ok, zip, files, warnings} or {ok: false, error}.
func analyzeGait(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return failure("expected arguments: fileBytes(Uint8Array), options(object)[, dictionary(Uint8Array)]")
	}
	data, ok := copyBytes(args[0])
	if !ok {
		return failure("csv file bytes are required")
	}
	optsArg := args[1]

	opts := pipeline.BytesOptions{
		SourceFileName: getString(optsArg, "source_file_name", "input.csv"),
		Data:           data,
		Format:         getString(optsArg, "format", "csv"),
	}
	if len(args) > 2 {
		if raw, ok := copyBytes(args[2]); ok {
			dict, err := gait.ReadDictionary(bytes.NewReader(raw))
			if err != nil {
				return failure(fmt.Sprintf("read dictionary: %v", err))
			}
			opts.Dictionary = dict
		}
	}

	result, err := pipeline.AnalyzeBytes(opts)
	if err != nil {
		return failure(err.Error())
	}

	zipBytes, err := zipArtifacts(result.Files)
	if err != nil {
		return failure(fmt.Sprintf("create zip: %v", err))
	}
	payload := js.Global().Get("Uint8Array").New(len(zipBytes))
	js.CopyBytesToJS(payload, zipBytes)

	return map[string]any{
		"ok":       true,
		"zip":      payload,
		"warnings": stringsToAny(result.Warnings),
		"files":    stringsToAny(sortedNames(result.Files)),
	}
}

func failure(msg string) map[string]any {
	return map[string]any{"ok": false, "error": msg}
}

func copyBytes(v js.Value) ([]byte, bool) {
	if v.IsUndefined() || v.IsNull() || v.Get("length").Int() == 0 {
		return nil, false
	}
	out := make([]byte, v.Get("length").Int())
	if n := js.CopyBytesToGo(out, v); n == 0 {
		return nil, false
	}
	return out, true
}

func sortedNames(files map[string][]byte) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func zipArtifacts(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fixedTime := time.Unix(0, 0).UTC()

	for _, name := range sortedNames(files) {
		h := &zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		}
		h.SetModTime(fixedTime)
		w, err := zw.CreateHeader(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func getString(v js.Value, key, fallback string) string {
	if v.IsUndefined() || v.IsNull() {
		return fallback
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() {
		return fallback
	}
	s := out.String()
	if s == "" || s == "undefined" || s == "null" {
		return fallback
	}
	return s
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

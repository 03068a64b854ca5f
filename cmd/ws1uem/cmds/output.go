package cmds

import (
	"fmt"
	"io"
	"os"
	"strings"
	"ws1uem/internal/query"
	"ws1uem/internal/types"
	"ws1uem/internal/uem"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

const zstdSuffix = ".zst"

// writeResult prints r to w: JSON results pretty-printed, optionally narrowed by a JMESPath expression,
// anything else as its status code.
func writeResult(w io.Writer, r *uem.Result, expression string) error {
	if r == nil {
		_, err := fmt.Fprintln(w, "null")
		return err
	}
	if !r.IsJSON() {
		_, err := fmt.Fprintln(w, r.StatusCode)
		return err
	}
	doc := r.JSON
	if expression != "" {
		v, err := query.EvalAny(expression, doc)
		if err != nil {
			return types.Err(types.ErrInvalidRequest, err, "--query %q", expression)
		}
		doc = v
	}
	return writeJSON(w, doc)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// openOutput returns where results go: stdout when path is empty, the file at path otherwise,
// zstd-compressed when path ends in .zst. Closing the writer flushes and closes the file.
func openOutput(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, zstdSuffix) {
		return f, nil
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &zstdFile{Encoder: enc, f: f}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

type zstdFile struct {
	*zstd.Encoder
	f *os.File
}

func (z *zstdFile) Close() error {
	if err := z.Encoder.Close(); err != nil {
		_ = z.f.Close()
		return err
	}
	return z.f.Close()
}

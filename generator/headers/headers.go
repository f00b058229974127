package headers

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	qerrors "github.com/wippyai/qtbind/errors"
)

//go:embed include
var include embed.FS

// Dir is the include directory generated code refers to (#include <qtbind/...>).
const Dir = "qtbind"

// Header is one embedded runtime file.
type Header struct {
	// Path is relative to the include root, for example "qtbind/thread.h".
	Path     string
	Contents []byte
}

// All returns every runtime file sorted by path.
func All() []Header {
	var out []Header
	_ = fs.WalkDir(include, "include", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := include.ReadFile(p)
		if err != nil {
			return err
		}
		out = append(out, Header{Path: strings.TrimPrefix(p, "include/"), Contents: data})
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Lookup returns the runtime file with the given path.
func Lookup(name string) ([]byte, bool) {
	data, err := include.ReadFile(path.Join("include", name))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write writes every runtime file under dir, creating directories as
// needed. It returns the paths written.
func Write(dir string) ([]string, error) {
	var written []string
	for _, h := range All() {
		target := filepath.Join(dir, filepath.FromSlash(h.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, qerrors.Write(target, err)
		}
		if err := os.WriteFile(target, h.Contents, 0o644); err != nil {
			return written, qerrors.Write(target, err)
		}
		written = append(written, target)
	}
	Logger().Debug("runtime headers written", zap.String("dir", dir), zap.Int("files", len(written)))
	return written, nil
}

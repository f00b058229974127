package generator

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/generator/cpp"
	"github.com/wippyai/qtbind/generator/headers"
	"github.com/wippyai/qtbind/generator/host"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal"
)

// Kind classifies a generated file.
type Kind uint8

const (
	KindHeader Kind = iota
	KindSource
	KindHost
	KindPlugin
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSource:
		return "source"
	case KindHost:
		return "host"
	case KindPlugin:
		return "plugin"
	case KindRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// File is one generated file. Path is relative to the output directory
// and uses forward slashes.
type File struct {
	Path     string
	Kind     Kind
	Contents []byte
}

// Output is the ordered result of one generation.
type Output struct {
	Files []File
}

func (o *Output) add(path string, kind Kind, contents []byte) {
	o.Files = append(o.Files, File{Path: path, Kind: kind, Contents: contents})
}

// Lookup returns the file with the given path.
func (o *Output) Lookup(path string) (File, bool) {
	for _, f := range o.Files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

// Options control generation.
type Options struct {
	// IncludePrefix is prepended to generated header names in #include
	// directives.
	IncludePrefix string
	// RuntimeImport is the import path prefix of the Go runtime packages.
	RuntimeImport string
	// NoQMLPlugin suppresses the QML extension plugin even when the file
	// declares a QML module.
	NoQMLPlugin bool
	// Headers adds the embedded runtime headers to the output.
	Headers bool
	// Model is the data model value type layouts are proven for. Zero
	// means LP64.
	Model marshal.DataModel
}

func (o Options) model() marshal.DataModel {
	if o.Model == 0 {
		return marshal.LP64
	}
	return o.Model
}

// Generate translates validated IR into native and host sources. It is
// deterministic: the same IR and options always produce identical output
// in the same order.
func Generate(f *ir.File, opts Options) *Output {
	out := &Output{}
	cppOpts := cpp.Options{IncludePrefix: opts.IncludePrefix}
	hostOpts := host.Options{Runtime: opts.RuntimeImport, Model: opts.model()}

	if src, ok := cpp.Types(f, opts.model()); ok {
		name, _ := cpp.TypesName(f)
		out.add(name, KindHeader, []byte(src))
	}
	if src, ok := host.Types(f); ok {
		out.add(host.TypesFileName(f), KindHost, src)
	}
	if src, ok := host.Layout(f, hostOpts); ok {
		out.add(host.LayoutFileName(f), KindHost, src)
	}

	for i := range f.Objects {
		o := &f.Objects[i]
		unit := cpp.Object(f, o, cppOpts)
		out.add(cpp.HeaderName(o), KindHeader, []byte(unit.Header))
		out.add(cpp.SourceName(o), KindSource, []byte(unit.Source))
		out.add(host.FileName(o), KindHost, host.Object(f, o, hostOpts))

		Logger().Debug("object generated",
			zap.String("object", o.QualifiedName()),
			zap.Int("properties", len(o.Properties)),
			zap.Int("signals", len(o.AllSignals())),
			zap.Int("invokables", len(o.Invokables)))
	}

	if unit, ok := cpp.Externs(f, cppOpts); ok {
		out.add(cpp.ExternsHeaderName(f), KindHeader, []byte(unit.Header))
		out.add(cpp.ExternsSourceName(f), KindSource, []byte(unit.Source))
		if src, ok := host.Externs(f, hostOpts); ok {
			out.add(host.ExternsFileName(f), KindHost, src)
		}
		Logger().Debug("externs generated", zap.Int("externs", len(f.Externs)))
	}

	if !opts.NoQMLPlugin {
		if src, ok := cpp.Plugin(f, cppOpts); ok {
			out.add(cpp.PluginName, KindPlugin, []byte(src))
		}
	}

	if opts.Headers {
		for _, h := range headers.All() {
			out.add(h.Path, KindRuntime, h.Contents)
		}
	}
	return out
}

// Write writes every file of the output under dir.
func (o *Output) Write(dir string) error {
	for _, f := range o.Files {
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return qerrors.Write(target, err)
		}
		if err := os.WriteFile(target, f.Contents, 0o644); err != nil {
			return qerrors.Write(target, err)
		}
	}
	Logger().Info("generated files written",
		zap.String("dir", dir),
		zap.Int("files", len(o.Files)))
	return nil
}

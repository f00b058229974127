package meta

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/ir"
)

// Registration is one type registered into a declarative UI module.
type Registration struct {
	Meta  *MetaObject
	URI   string
	Major int
	Minor int
}

// Registry holds type registrations by module URI and element name.
type Registry struct {
	types map[string]map[string]Registration
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	registerAliases()
	return &Registry{types: make(map[string]map[string]Registration)}
}

var (
	aliasOnce sync.Once
	aliases   map[string]string
)

// registerAliases installs the numeric type aliases once per process.
func registerAliases() {
	aliasOnce.Do(func() {
		aliases = map[string]string{
			"int8":    "qint8",
			"int16":   "qint16",
			"int32":   "qint32",
			"int64":   "qint64",
			"uint8":   "quint8",
			"uint16":  "quint16",
			"uint32":  "quint32",
			"uint64":  "quint64",
			"float32": "float",
			"float64": "qreal",
		}
		Logger().Debug("registered numeric type aliases", zap.Int("count", len(aliases)))
	})
}

// Alias returns the native alias registered for a host numeric type.
func Alias(host string) (string, bool) {
	registerAliases()
	native, ok := aliases[host]
	return native, ok
}

// RegisterType registers mo under uri at the given version.
func (r *Registry) RegisterType(uri string, major, minor int, mo *MetaObject) error {
	if uri == "" {
		return qerrors.InvalidInput(qerrors.PhaseRegister, "module URI is empty")
	}
	if mo == nil || mo.QMLName == "" {
		return qerrors.Registration(uri, "", fmt.Errorf("meta object has no element name"))
	}
	if major < 0 || minor < 0 {
		return qerrors.Registration(uri, mo.QMLName, fmt.Errorf("invalid version %d.%d", major, minor))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	mod, ok := r.types[uri]
	if !ok {
		mod = make(map[string]Registration)
		r.types[uri] = mod
	}
	if _, dup := mod[mo.QMLName]; dup {
		return qerrors.Registration(uri, mo.QMLName, fmt.Errorf("element already registered"))
	}
	mod[mo.QMLName] = Registration{Meta: mo, URI: uri, Major: major, Minor: minor}

	Logger().Debug("registered type",
		zap.String("uri", uri),
		zap.String("name", mo.QMLName),
		zap.String("class", mo.ClassName),
		zap.Int("major", major),
		zap.Int("minor", minor))
	return nil
}

// RegisterFile registers every object of f that declares a QML element.
func (r *Registry) RegisterFile(f *ir.File) error {
	if f.QML == nil {
		return nil
	}
	var errs qerrors.List
	for i := range f.Objects {
		o := &f.Objects[i]
		if o.QML == nil {
			continue
		}
		if err := r.RegisterType(f.QML.URI, f.QML.Major, f.QML.Minor, FromIR(o)); err != nil {
			if e, ok := err.(*qerrors.Error); ok {
				errs.Add(e)
			}
		}
	}
	return errs.Err()
}

// Lookup finds a registration by module URI and element name.
func (r *Registry) Lookup(uri, name string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.types[uri][name]
	return reg, ok
}

// Types returns the element names registered under uri, sorted.
func (r *Registry) Types(uri string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types[uri]))
	for name := range r.types[uri] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

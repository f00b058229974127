package ir

import (
	"strings"
	"unicode"
)

// DefaultBase is the native base class used when an object declares none.
const DefaultBase = "QObject"

// PropertyNames are the derived method names of one property.
type PropertyNames struct {
	Getter   string // native READ
	Setter   string // native WRITE, empty for read-only properties
	Notify   string // native NOTIFY, empty for constant properties
	GoGetter string
	GoSetter string
	GoNotify string
}

// Names derives the accessor, mutator and notify names of p. Native names
// follow the C++ name, Go names the host name.
func (p *Property) Names() PropertyNames {
	native := p.NativeName()
	n := PropertyNames{
		Getter:   p.Read,
		GoGetter: p.GoIdent(),
	}
	if n.Getter == "" {
		n.Getter = "get" + UpperFirst(native)
	}
	if !p.ReadOnly && !p.Constant {
		n.Setter = p.Write
		if n.Setter == "" {
			n.Setter = "set" + UpperFirst(native)
		}
		n.GoSetter = "Set" + p.GoIdent()
	}
	if !p.Constant {
		n.Notify = p.Notify
		if n.Notify == "" {
			n.Notify = native + "Changed"
		}
		n.GoNotify = GoName(n.Notify)
		if p.HostName != "" && p.Notify == "" {
			n.GoNotify = p.GoIdent() + "Changed"
		}
	}
	return n
}

// NativeName returns the name of the property on the native side.
func (p *Property) NativeName() string {
	if p.CxxName != "" {
		return p.CxxName
	}
	return p.Name
}

// GoIdent returns the exported Go name of the property.
func (p *Property) GoIdent() string {
	return hostIdent(p.HostName, p.Name)
}

func hostIdent(override, name string) string {
	if override != "" {
		return GoName(override)
	}
	return GoName(name)
}

// NativeName returns the C++ identifier of the signal.
func (s *Signal) NativeName() string {
	if s.CxxName != "" {
		return s.CxxName
	}
	return s.Name
}

// GoIdent returns the exported Go name of the signal.
func (s *Signal) GoIdent() string {
	return hostIdent(s.HostName, s.Name)
}

// NativeName returns the C++ identifier of the invokable.
func (m *Invokable) NativeName() string {
	if m.CxxName != "" {
		return m.CxxName
	}
	return m.Name
}

// GoIdent returns the exported Go name of the invokable.
func (m *Invokable) GoIdent() string {
	return hostIdent(m.HostName, m.Name)
}

// NativeName returns the C++ identifier of the base class method.
func (m *InheritedMethod) NativeName() string {
	if m.CxxName != "" {
		return m.CxxName
	}
	return m.Name
}

// NativeInclude returns the header declaring the native type. Unqualified
// Qt class names default to their QtCore header.
func (vt *ValueType) NativeInclude() string {
	return nativeInclude(vt.Include, vt.Native)
}

// NativeInclude returns the header declaring the extern object type.
func (e *ExternObject) NativeInclude() string {
	if e.Namespace != "" {
		return e.Include
	}
	return nativeInclude(e.Include, e.Name)
}

func nativeInclude(include, native string) string {
	if include != "" {
		return include
	}
	if len(native) > 1 && native[0] == 'Q' && unicode.IsUpper(rune(native[1])) && !strings.Contains(native, "::") {
		return "<QtCore/" + native + ">"
	}
	return ""
}

// BaseClass returns the native base class, defaulting to QObject.
func (o *Object) BaseClass() string {
	if o.Base == "" {
		return DefaultBase
	}
	return o.Base
}

// Locking reports whether host logic is guarded by the per-object
// recursive lock. Locking is on unless the object opts out.
func (o *Object) Locking() bool {
	return !o.NoLocking
}

// QualifiedName returns the fully qualified C++ class name.
func (o *Object) QualifiedName() string {
	if o.Namespace == "" {
		return "::" + o.Name
	}
	return "::" + o.Namespace + "::" + o.Name
}

// LogicInterface is the name of the Go interface host logic implements.
func (o *Object) LogicInterface() string {
	return GoName(o.Name) + "Logic"
}

// HostTypeName is the C++ name the host companion type is exported under.
func (o *Object) HostTypeName() string {
	if o.HostType != "" {
		return o.HostType
	}
	return o.Name + "Host"
}

// QMLName returns the element name used for declarative UI registration.
func (o *Object) QMLName() string {
	if o.QML != nil && o.QML.Name != "" {
		return o.QML.Name
	}
	return o.Name
}

// AllSignals returns the object's own signals followed by the
// auto-generated property change signals, in declaration order.
func (o *Object) AllSignals() []Signal {
	out := make([]Signal, 0, len(o.Signals)+len(o.Properties))
	out = append(out, o.Signals...)
	for i := range o.Properties {
		n := o.Properties[i].Names()
		if n.Notify == "" {
			continue
		}
		out = append(out, Signal{Name: n.Notify})
	}
	return out
}

// QualifiedName returns the fully qualified C++ class name.
func (e *ExternObject) QualifiedName() string {
	if e.Namespace == "" {
		return "::" + e.Name
	}
	return "::" + e.Namespace + "::" + e.Name
}

// Object returns e as an object without host logic, the shape signal glue
// is generated for.
func (e *ExternObject) Object() *Object {
	return &Object{
		Name:      e.Name,
		Namespace: e.Namespace,
		Base:      e.Base,
		Signals:   e.Signals,
		NoLocking: true,
	}
}

// Stem returns the deterministic file stem of the object (snake_case).
func (o *Object) Stem() string {
	return Snake(o.Name)
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// GoName converts a camelCase or snake_case identifier into an exported Go name.
func GoName(s string) string {
	if !strings.Contains(s, "_") {
		return UpperFirst(s)
	}
	var b strings.Builder
	for _, part := range strings.Split(s, "_") {
		b.WriteString(UpperFirst(part))
	}
	return b.String()
}

// Snake converts a CamelCase identifier into snake_case.
func Snake(s string) string {
	var b strings.Builder
	r := []rune(s)
	for i, c := range r {
		if unicode.IsUpper(c) {
			prevLower := i > 0 && (unicode.IsLower(r[i-1]) || unicode.IsDigit(r[i-1]))
			nextLower := i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1]) && unicode.IsUpper(r[i-1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(c))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

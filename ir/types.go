package ir

// Pass describes how a value crosses the language boundary.
type Pass string

const (
	PassValue    Pass = "value"     // copied by value
	PassRef      Pass = "ref"       // mutable reference
	PassConstRef Pass = "const_ref" // borrowed, read-only
	PassOwned    Pass = "owned"     // heap-owned pointer, ownership moves
)

// TypeKind classifies a type for marshalling and layout purposes.
type TypeKind string

const (
	KindPrimitive TypeKind = "primitive" // fixed-width scalars
	KindTrivial   TypeKind = "trivial"   // relocatable value types with static layout
	KindOpaque    TypeKind = "opaque"    // native-only types handled through pointers
)

// TypeRef names a type on both sides of the boundary. Pass is the mode of
// the native signature; HostPass is the mode host glue produces or accepts.
// The generator converts between the two when they differ.
type TypeRef struct {
	Native   string   `yaml:"native"`
	Host     string   `yaml:"host"`
	Pass     Pass     `yaml:"pass,omitempty"`
	HostPass Pass     `yaml:"host_pass,omitempty"`
	Kind     TypeKind `yaml:"kind,omitempty"`
}

// HostSide returns t as host glue spells it.
func (t TypeRef) HostSide() TypeRef {
	if t.HostPass != "" {
		t.Pass = t.HostPass
	}
	return t
}

// Param is a named parameter of a signal, invokable or constructor.
type Param struct {
	Name string  `yaml:"name"`
	Type TypeRef `yaml:"type"`
}

// Specifiers are the C++ virtual dispatch modifiers of a method.
type Specifiers struct {
	Final    bool `yaml:"final,omitempty"`
	Override bool `yaml:"override,omitempty"`
	Virtual  bool `yaml:"virtual,omitempty"`
}

// Property is a reflected property with accessor, mutator and notify signal.
// CxxName renames the property on the native side and HostName on the Go
// side. Reset names an invokable of the object that restores the default.
type Property struct {
	Name     string  `yaml:"name"`
	CxxName  string  `yaml:"cxx_name,omitempty"`
	HostName string  `yaml:"host_name,omitempty"`
	Type     TypeRef `yaml:"type"`
	Read     string  `yaml:"read,omitempty"`
	Write    string  `yaml:"write,omitempty"`
	Notify   string  `yaml:"notify,omitempty"`
	Reset    string  `yaml:"reset,omitempty"`
	ReadOnly bool    `yaml:"read_only,omitempty"`
	Constant bool    `yaml:"constant,omitempty"`
	Required bool    `yaml:"required,omitempty"`
	Final    bool    `yaml:"final,omitempty"`
}

// Signal is a native signal, either declared by the object or by its base.
type Signal struct {
	Name      string  `yaml:"name"`
	CxxName   string  `yaml:"cxx_name,omitempty"`
	HostName  string  `yaml:"host_name,omitempty"`
	Params    []Param `yaml:"params,omitempty"`
	Private   bool    `yaml:"private,omitempty"`
	Inherited bool    `yaml:"inherited,omitempty"`
}

// Invokable is a method implemented by host logic (or natively when PureNative).
type Invokable struct {
	Name       string     `yaml:"name"`
	CxxName    string     `yaml:"cxx_name,omitempty"`
	HostName   string     `yaml:"host_name,omitempty"`
	Params     []Param    `yaml:"params,omitempty"`
	Return     *TypeRef   `yaml:"return,omitempty"`
	Mutable    bool       `yaml:"mutable,omitempty"`
	Specifiers Specifiers `yaml:"specifiers,omitempty"`
	PureNative bool       `yaml:"pure_native,omitempty"`
	Invokable  bool       `yaml:"invokable,omitempty"`
}

// InheritedMethod exposes a method of the native base class to host logic.
type InheritedMethod struct {
	Name    string   `yaml:"name"`
	CxxName string   `yaml:"cxx_name,omitempty"`
	Params  []Param  `yaml:"params,omitempty"`
	Return  *TypeRef `yaml:"return,omitempty"`
	Mutable bool     `yaml:"mutable,omitempty"`
}

// Constructor is one host-defined constructor variant. Arguments are the
// public constructor parameters; the other lists are the pre-computed state
// routed to the base class, to host object allocation and to the
// post-construction hook.
type Constructor struct {
	Arguments           []TypeRef `yaml:"arguments,omitempty"`
	BaseArguments       []TypeRef `yaml:"base_arguments,omitempty"`
	NewArguments        []TypeRef `yaml:"new_arguments,omitempty"`
	InitializeArguments []TypeRef `yaml:"initialize_arguments,omitempty"`
}

// EnumValue is a single enumerator.
type EnumValue struct {
	Name  string `yaml:"name"`
	Value int64  `yaml:"value"`
}

// Enum is an enum registered with the reflection system.
type Enum struct {
	Name      string      `yaml:"name"`
	Namespace string      `yaml:"namespace,omitempty"`
	Values    []EnumValue `yaml:"values"`
}

// QMLElement controls declarative UI registration of one object.
type QMLElement struct {
	Name        string `yaml:"name,omitempty"`
	Singleton   bool   `yaml:"singleton,omitempty"`
	Uncreatable bool   `yaml:"uncreatable,omitempty"`
}

// QMLModule identifies the declarative UI module objects are registered into.
type QMLModule struct {
	URI        string `yaml:"uri"`
	Major      int    `yaml:"major"`
	Minor      int    `yaml:"minor"`
	PluginName string `yaml:"plugin,omitempty"`
}

// Object describes one generated native object type.
type Object struct {
	Name         string            `yaml:"name"`
	Namespace    string            `yaml:"namespace,omitempty"`
	Base         string            `yaml:"base,omitempty"`
	HostType     string            `yaml:"host_type,omitempty"`
	Properties   []Property        `yaml:"properties,omitempty"`
	Signals      []Signal          `yaml:"signals,omitempty"`
	Invokables   []Invokable       `yaml:"invokables,omitempty"`
	Inherited    []InheritedMethod `yaml:"inherited,omitempty"`
	Constructors []Constructor     `yaml:"constructors,omitempty"`
	Enums        []Enum            `yaml:"enums,omitempty"`
	Threading    bool              `yaml:"threading,omitempty"`
	NoLocking    bool              `yaml:"no_locking,omitempty"`
	QML          *QMLElement       `yaml:"qml,omitempty"`
}

// FieldKind is the primitive kind of a value type field.
type FieldKind string

const (
	FieldBool    FieldKind = "bool"
	FieldInt8    FieldKind = "i8"
	FieldInt16   FieldKind = "i16"
	FieldInt32   FieldKind = "i32"
	FieldInt64   FieldKind = "i64"
	FieldUint8   FieldKind = "u8"
	FieldUint16  FieldKind = "u16"
	FieldUint32  FieldKind = "u32"
	FieldUint64  FieldKind = "u64"
	FieldFloat32 FieldKind = "f32"
	FieldFloat64 FieldKind = "f64"
	FieldPointer FieldKind = "ptr"
)

// Field is one member of a value type.
type Field struct {
	Name string    `yaml:"name"`
	Type FieldKind `yaml:"type"`
}

// ValueType is a type stored inline on both sides of the boundary and
// therefore subject to layout proofs.
type ValueType struct {
	Name   string `yaml:"name"`
	Native string `yaml:"native"`
	Host   string `yaml:"host"`
	// Include is the header declaring Native, for example "<QtCore/QPoint>".
	Include     string  `yaml:"include,omitempty"`
	Fields      []Field `yaml:"fields"`
	Relocatable bool    `yaml:"relocatable,omitempty"`
}

// ExternObject is an existing native object type whose signals host logic
// connects to. Nothing is generated for the type itself.
type ExternObject struct {
	Name      string   `yaml:"name"`
	Namespace string   `yaml:"namespace,omitempty"`
	Base      string   `yaml:"base,omitempty"`
	Include   string   `yaml:"include,omitempty"`
	Signals   []Signal `yaml:"signals"`
}

// File is the validated IR of one bridge module.
type File struct {
	Namespace  string         `yaml:"namespace,omitempty"`
	Package    string         `yaml:"package"`
	Objects    []Object       `yaml:"objects,omitempty"`
	Externs    []ExternObject `yaml:"externs,omitempty"`
	Enums      []Enum         `yaml:"enums,omitempty"`
	ValueTypes []ValueType    `yaml:"value_types,omitempty"`
	QML        *QMLModule     `yaml:"qml,omitempty"`
}

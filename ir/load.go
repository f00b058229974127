package ir

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	qerrors "github.com/wippyai/qtbind/errors"
)

// LoadFile reads, decodes, normalizes and validates an IR file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, qerrors.Load("read "+path, err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes one IR document. JSON input is accepted as YAML.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, qerrors.InvalidInput(qerrors.PhaseLoad, "empty IR document")
		}
		return nil, qerrors.Load("decode IR", err)
	}

	Normalize(&f)
	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Normalize fills defaults the front-end leaves implicit: object namespaces
// inherit the file namespace and unset pass modes and kinds are made explicit.
func Normalize(f *File) {
	for i := range f.Objects {
		o := &f.Objects[i]
		if o.Namespace == "" {
			o.Namespace = f.Namespace
		}
		for j := range o.Properties {
			normalizeResult(&o.Properties[j].Type)
		}
		for j := range o.Signals {
			normalizeParams(o.Signals[j].Params)
		}
		for j := range o.Invokables {
			normalizeParams(o.Invokables[j].Params)
			if o.Invokables[j].Return != nil {
				normalizeResult(o.Invokables[j].Return)
			}
		}
		for j := range o.Inherited {
			normalizeParams(o.Inherited[j].Params)
			if o.Inherited[j].Return != nil {
				normalizeResult(o.Inherited[j].Return)
			}
		}
		for j := range o.Constructors {
			c := &o.Constructors[j]
			for _, list := range [][]TypeRef{c.Arguments, c.BaseArguments, c.NewArguments, c.InitializeArguments} {
				for k := range list {
					normalizeType(&list[k])
				}
			}
		}
		for j := range o.Enums {
			if o.Enums[j].Namespace == "" {
				o.Enums[j].Namespace = o.Namespace
			}
		}
	}
	// Extern types already exist, so they keep the namespace they name.
	for i := range f.Externs {
		e := &f.Externs[i]
		for j := range e.Signals {
			normalizeParams(e.Signals[j].Params)
		}
	}
	for i := range f.Enums {
		if f.Enums[i].Namespace == "" {
			f.Enums[i].Namespace = f.Namespace
		}
	}
}

func normalizeParams(params []Param) {
	for i := range params {
		normalizeType(&params[i].Type)
	}
}

func normalizeType(t *TypeRef) {
	if t.Kind == "" {
		t.Kind = KindPrimitive
	}
	if t.Pass == "" {
		switch t.Kind {
		case KindOpaque:
			t.Pass = PassConstRef
		default:
			t.Pass = PassValue
		}
	}
	if t.Host == "" {
		t.Host = hostForNative(t.Native)
	}
	if t.HostPass == "" {
		t.HostPass = t.Pass
	}
}

// normalizeResult defaults the host pass mode of values host glue hands to
// native code: owned natives are boxed from host values, opaque values move
// out of host-owned storage and opaque references are borrowed.
func normalizeResult(t *TypeRef) {
	if t.HostPass == "" {
		kind := t.Kind
		if kind == "" {
			kind = KindPrimitive
		}
		pass := t.Pass
		if pass == "" && kind == KindOpaque {
			pass = PassConstRef
		}
		switch {
		case pass == PassOwned:
			t.HostPass = PassValue
		case kind == KindOpaque && pass == PassValue:
			t.HostPass = PassOwned
		case kind == KindOpaque && pass == PassConstRef:
			t.HostPass = PassRef
		}
	}
	normalizeType(t)
}

var nativeToHost = map[string]string{
	"bool":            "bool",
	"float":           "float32",
	"double":          "float64",
	"qreal":           "float64",
	"::std::int8_t":   "int8",
	"::std::int16_t":  "int16",
	"::std::int32_t":  "int32",
	"::std::int64_t":  "int64",
	"::std::uint8_t":  "uint8",
	"::std::uint16_t": "uint16",
	"::std::uint32_t": "uint32",
	"::std::uint64_t": "uint64",
	"qint8":           "int8",
	"qint16":          "int16",
	"qint32":          "int32",
	"qint64":          "int64",
	"quint8":          "uint8",
	"quint16":         "uint16",
	"quint32":         "uint32",
	"quint64":         "uint64",
	"QString":         "string",
}

func hostForNative(native string) string {
	if h, ok := nativeToHost[native]; ok {
		return h
	}
	return ""
}

package meta

import (
	"github.com/wippyai/qtbind/ir"
)

// PropertyInfo is the reflected form of one property.
type PropertyInfo struct {
	Name     string
	Type     string
	Read     string
	Write    string
	Notify   string
	Reset    string
	Constant bool
	Required bool
	Final    bool
}

// MethodInfo is the reflected form of a signal or invokable.
type MethodInfo struct {
	Name       string
	Params     []string
	ParamTypes []string
	Return     string
	Const      bool
}

// EnumInfo is a registered enum and its enumerators in declaration order.
type EnumInfo struct {
	Name   string
	Keys   []string
	Values []int64
}

// MetaObject is the reflection record of one object type.
type MetaObject struct {
	ClassName   string
	SuperClass  string
	QMLName     string
	Properties  []PropertyInfo
	Signals     []MethodInfo
	Methods     []MethodInfo
	Enums       []EnumInfo
	Singleton   bool
	Uncreatable bool
}

// FromIR derives the meta object of o.
func FromIR(o *ir.Object) *MetaObject {
	mo := &MetaObject{
		ClassName:  o.QualifiedName(),
		SuperClass: o.BaseClass(),
		QMLName:    o.QMLName(),
	}
	if o.QML != nil {
		mo.Singleton = o.QML.Singleton
		mo.Uncreatable = o.QML.Uncreatable
	}

	for i := range o.Properties {
		p := &o.Properties[i]
		n := p.Names()
		mo.Properties = append(mo.Properties, PropertyInfo{
			Name:     p.NativeName(),
			Type:     TypeName(p.Type),
			Read:     n.Getter,
			Write:    n.Setter,
			Notify:   n.Notify,
			Reset:    p.Reset,
			Constant: p.Constant,
			Required: p.Required,
			Final:    p.Final,
		})
	}

	for _, s := range o.AllSignals() {
		mo.Signals = append(mo.Signals, method(s.NativeName(), s.Params, nil, false))
	}

	for i := range o.Invokables {
		m := &o.Invokables[i]
		if !m.Invokable && !m.PureNative {
			continue
		}
		mo.Methods = append(mo.Methods, method(m.NativeName(), m.Params, m.Return, !m.Mutable))
	}

	for i := range o.Enums {
		e := &o.Enums[i]
		info := EnumInfo{Name: e.Name}
		for _, v := range e.Values {
			info.Keys = append(info.Keys, v.Name)
			info.Values = append(info.Values, v.Value)
		}
		mo.Enums = append(mo.Enums, info)
	}
	return mo
}

func method(name string, params []ir.Param, ret *ir.TypeRef, isConst bool) MethodInfo {
	m := MethodInfo{Name: name, Return: "void", Const: isConst}
	if ret != nil {
		m.Return = TypeName(*ret)
	}
	for _, p := range params {
		m.Params = append(m.Params, p.Name)
		m.ParamTypes = append(m.ParamTypes, TypeName(p.Type))
	}
	return m
}

// TypeName returns the meta-type name of t. Primitive numbers use the
// aliases registered with the meta-type system; everything else keeps its
// native spelling.
func TypeName(t ir.TypeRef) string {
	if t.Kind == ir.KindPrimitive || t.Kind == "" {
		if alias, ok := Alias(t.Host); ok {
			return alias
		}
	}
	return t.Native
}

// Property looks up a property by name.
func (mo *MetaObject) Property(name string) (PropertyInfo, bool) {
	for _, p := range mo.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyInfo{}, false
}

// Signal looks up a signal by name.
func (mo *MetaObject) Signal(name string) (MethodInfo, bool) {
	for _, s := range mo.Signals {
		if s.Name == name {
			return s, true
		}
	}
	return MethodInfo{}, false
}

package ir

import (
	qerrors "github.com/wippyai/qtbind/errors"
)

// Validate checks the invariants the generator relies on. All problems found
// are reported together; the returned error is nil or an *errors.List.
func Validate(f *File) error {
	var errs qerrors.List

	if f.Package == "" {
		errs.Add(qerrors.InvalidInput(qerrors.PhaseValidate, "file has no host package"))
	}

	objects := make(map[string]struct{}, len(f.Objects))
	for i := range f.Objects {
		o := &f.Objects[i]
		key := o.QualifiedName()
		if _, dup := objects[key]; dup {
			errs.Add(qerrors.DuplicateName("", "object", key))
		}
		objects[key] = struct{}{}
		validateObject(f, o, &errs)
	}

	for i := range f.Externs {
		e := &f.Externs[i]
		key := e.QualifiedName()
		if _, dup := objects[key]; dup {
			errs.Add(qerrors.DuplicateName("", "object", key))
		}
		objects[key] = struct{}{}
		validateExtern(e, &errs)
	}

	validateEnums("", f.Enums, &errs)

	for i := range f.ValueTypes {
		validateValueType(&f.ValueTypes[i], &errs)
	}

	return errs.Err()
}

func validateObject(f *File, o *Object, errs *qerrors.List) {
	if o.Name == "" {
		errs.Add(qerrors.InvalidInput(qerrors.PhaseValidate, "object without a name"))
		return
	}

	if o.Threading && o.NoLocking {
		errs.Add(qerrors.ConflictingModifiers(o.Name, "", "threading requires locking"))
	}
	if o.QML != nil && f.QML == nil {
		errs.Add(qerrors.New(qerrors.PhaseValidate, qerrors.KindInvalidInput).
			Object(o.Name).
			Detail("QML element declared but the file has no QML module").
			Build())
	}
	if o.QML != nil && o.QML.Singleton && o.QML.Uncreatable {
		errs.Add(qerrors.ConflictingModifiers(o.Name, "", "QML singleton cannot be uncreatable"))
	}

	props := make(map[string]struct{}, len(o.Properties))
	goProps := make(map[string]struct{}, len(o.Properties))
	for i := range o.Properties {
		p := &o.Properties[i]
		if _, dup := props[p.NativeName()]; dup {
			errs.Add(qerrors.DuplicateName(o.Name, "property", p.NativeName()))
		}
		props[p.NativeName()] = struct{}{}
		if _, dup := goProps[p.GoIdent()]; dup {
			errs.Add(qerrors.DuplicateName(o.Name, "host property", p.GoIdent()))
		}
		goProps[p.GoIdent()] = struct{}{}
		if p.Type.Native == "" {
			errs.Add(qerrors.New(qerrors.PhaseValidate, qerrors.KindInvalidInput).
				Object(o.Name).Member(p.Name).
				Detail("property has no native type").
				Build())
		}
		validatePass(o.Name, p.Name, p.Type, errs)
		if p.Constant && p.Notify != "" {
			errs.Add(qerrors.ConflictingModifiers(o.Name, p.Name, "constant property cannot have a notify signal"))
		}
		if p.Reset != "" {
			validateReset(o, p, errs)
		}
	}

	signals := make(map[string]struct{})
	for _, s := range o.AllSignals() {
		if _, dup := signals[s.Name]; dup {
			errs.Add(qerrors.DuplicateName(o.Name, "signal", s.Name))
		}
		signals[s.Name] = struct{}{}
	}
	for i := range o.Signals {
		s := &o.Signals[i]
		if s.Inherited && s.Private {
			errs.Add(qerrors.ConflictingModifiers(o.Name, s.Name, "inherited signal cannot be private"))
		}
		validateParams(o.Name, s.Name, s.Params, errs)
	}

	methods := make(map[string]struct{})
	for i := range o.Invokables {
		m := &o.Invokables[i]
		if _, dup := methods[m.NativeName()]; dup {
			errs.Add(qerrors.DuplicateName(o.Name, "method", m.NativeName()))
		}
		methods[m.NativeName()] = struct{}{}
		if m.Specifiers.Final && m.Specifiers.Virtual {
			errs.Add(qerrors.ConflictingModifiers(o.Name, m.Name, "method cannot be both final and virtual"))
		}
		if m.PureNative && m.Invokable {
			errs.Add(qerrors.ConflictingModifiers(o.Name, m.Name, "pure native method cannot be a host invokable"))
		}
		validateParams(o.Name, m.Name, m.Params, errs)
		if m.Return != nil {
			validatePass(o.Name, m.Name, *m.Return, errs)
		}
	}
	for i := range o.Inherited {
		m := &o.Inherited[i]
		if _, dup := methods[m.Name]; dup {
			errs.Add(qerrors.DuplicateName(o.Name, "method", m.Name))
		}
		methods[m.Name] = struct{}{}
		validateParams(o.Name, m.Name, m.Params, errs)
	}

	validateEnums(o.Name, o.Enums, errs)
}

// validateReset requires the reset function to be a method of the object
// taking no arguments and returning nothing.
func validateReset(o *Object, p *Property, errs *qerrors.List) {
	if p.Constant {
		errs.Add(qerrors.ConflictingModifiers(o.Name, p.Name, "constant property cannot be reset"))
		return
	}
	for i := range o.Invokables {
		m := &o.Invokables[i]
		if m.NativeName() != p.Reset {
			continue
		}
		if len(m.Params) > 0 || m.Return != nil {
			errs.Add(qerrors.New(qerrors.PhaseValidate, qerrors.KindInvalidInput).
				Object(o.Name).Member(p.Name).
				Detail("reset function %s must take no arguments and return nothing", p.Reset).
				Build())
		}
		return
	}
	errs.Add(qerrors.New(qerrors.PhaseValidate, qerrors.KindInvalidInput).
		Object(o.Name).Member(p.Name).
		Detail("reset function %s is not a method of the object", p.Reset).
		Build())
}

func validateExtern(e *ExternObject, errs *qerrors.List) {
	if e.Name == "" {
		errs.Add(qerrors.InvalidInput(qerrors.PhaseValidate, "extern object without a name"))
		return
	}
	if len(e.Signals) == 0 {
		errs.Add(qerrors.New(qerrors.PhaseValidate, qerrors.KindInvalidInput).
			Object(e.Name).
			Detail("extern object declares no signals").
			Build())
	}
	seen := make(map[string]struct{}, len(e.Signals))
	for i := range e.Signals {
		s := &e.Signals[i]
		if _, dup := seen[s.Name]; dup {
			errs.Add(qerrors.DuplicateName(e.Name, "signal", s.Name))
		}
		seen[s.Name] = struct{}{}
		if s.Private || s.Inherited {
			errs.Add(qerrors.ConflictingModifiers(e.Name, s.Name, "extern signals cannot be private or inherited"))
		}
		validateParams(e.Name, s.Name, s.Params, errs)
	}
}

func validateParams(object, member string, params []Param, errs *qerrors.List) {
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, dup := seen[p.Name]; dup {
			errs.Add(qerrors.DuplicateName(object, "parameter of "+member, p.Name))
		}
		seen[p.Name] = struct{}{}
		validatePass(object, member, p.Type, errs)
	}
}

// validatePass rejects pass mode pairs no conversion exists for: ownership
// cannot be moved into or out of a reference.
func validatePass(object, member string, t TypeRef, errs *qerrors.List) {
	host := t.HostSide().Pass
	if host == t.Pass {
		return
	}
	owned := host == PassOwned || t.Pass == PassOwned
	ref := host == PassRef || host == PassConstRef || t.Pass == PassRef
	if owned && ref || t.Pass == PassRef {
		errs.Add(qerrors.New(qerrors.PhaseValidate, qerrors.KindInvalidInput).
			Object(object).Member(member).
			Detail("no conversion from host pass mode " + string(host) + " to " + string(t.Pass)).
			Build())
	}
}

func validateEnums(object string, enums []Enum, errs *qerrors.List) {
	names := make(map[string]struct{}, len(enums))
	for i := range enums {
		e := &enums[i]
		if _, dup := names[e.Namespace+"::"+e.Name]; dup {
			errs.Add(qerrors.DuplicateName(object, "enum", e.Name))
		}
		names[e.Namespace+"::"+e.Name] = struct{}{}

		values := make(map[string]struct{}, len(e.Values))
		for _, v := range e.Values {
			if _, dup := values[v.Name]; dup {
				errs.Add(qerrors.DuplicateName(object, "enumerator of "+e.Name, v.Name))
			}
			values[v.Name] = struct{}{}
		}
	}
}

func validateValueType(vt *ValueType, errs *qerrors.List) {
	if len(vt.Fields) == 0 {
		errs.Add(qerrors.New(qerrors.PhaseValidate, qerrors.KindInvalidInput).
			Object(vt.Name).
			Detail("value type has no fields").
			Build())
		return
	}
	hasPointer := false
	for _, fld := range vt.Fields {
		switch fld.Type {
		case FieldBool, FieldInt8, FieldInt16, FieldInt32, FieldInt64,
			FieldUint8, FieldUint16, FieldUint32, FieldUint64,
			FieldFloat32, FieldFloat64:
		case FieldPointer:
			hasPointer = true
		default:
			errs.Add(qerrors.New(qerrors.PhaseValidate, qerrors.KindInvalidInput).
				Object(vt.Name).Member(fld.Name).
				Detail("unknown field kind %q", fld.Type).
				Build())
		}
	}
	if vt.Relocatable && hasPointer {
		errs.Add(qerrors.ConflictingModifiers(vt.Name, "", "value type with pointer fields cannot be relocatable"))
	}
}

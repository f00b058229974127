package marshal

import (
	"reflect"
	"unsafe"

	qerrors "github.com/wippyai/qtbind/errors"
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal/internal/layout"
)

type (
	DataModel  = layout.DataModel
	LayoutInfo = layout.Info
)

const (
	ILP32 = layout.ILP32
	LP64  = layout.LP64
)

// HostModel is the data model of the running process.
func HostModel() DataModel {
	return DataModel(unsafe.Sizeof(uintptr(0)))
}

// Proof is the layout a value type must have on both sides of the boundary.
type Proof struct {
	FieldOffs   map[string]uint32
	Name        string
	Native      string
	Host        string
	Size        uint32
	Align       uint32
	Relocatable bool
}

type LayoutCalculator struct {
	calc *layout.Calculator
}

func NewLayoutCalculator(model DataModel) *LayoutCalculator {
	return &LayoutCalculator{
		calc: layout.NewCalculator(model),
	}
}

func (lc *LayoutCalculator) Calculate(vt *ir.ValueType) LayoutInfo {
	return lc.calc.Calculate(vt)
}

// Prove computes the layout proof of vt.
func (lc *LayoutCalculator) Prove(vt *ir.ValueType) Proof {
	info := lc.calc.Calculate(vt)
	return Proof{
		Name:        vt.Name,
		Native:      vt.Native,
		Host:        vt.Host,
		Size:        info.Size,
		Align:       info.Align,
		FieldOffs:   info.FieldOffs,
		Relocatable: info.Relocatable && vt.Relocatable,
	}
}

var fieldKinds = map[ir.FieldKind]reflect.Kind{
	ir.FieldBool:    reflect.Bool,
	ir.FieldInt8:    reflect.Int8,
	ir.FieldInt16:   reflect.Int16,
	ir.FieldInt32:   reflect.Int32,
	ir.FieldInt64:   reflect.Int64,
	ir.FieldUint8:   reflect.Uint8,
	ir.FieldUint16:  reflect.Uint16,
	ir.FieldUint32:  reflect.Uint32,
	ir.FieldUint64:  reflect.Uint64,
	ir.FieldFloat32: reflect.Float32,
	ir.FieldFloat64: reflect.Float64,
	ir.FieldPointer: reflect.UnsafePointer,
}

// CheckHost verifies the Go definition of a value type against the native
// layout computed for the running data model.
func CheckHost(vt *ir.ValueType, host reflect.Type) error {
	if host.Kind() != reflect.Struct {
		return qerrors.LayoutMismatch(vt.Name, "host type %s is not a struct", host)
	}
	if host.NumField() != len(vt.Fields) {
		return qerrors.LayoutMismatch(vt.Name, "host type has %d fields, native has %d", host.NumField(), len(vt.Fields))
	}

	proof := NewLayoutCalculator(HostModel()).Prove(vt)

	for i, field := range vt.Fields {
		hf := host.Field(i)
		if want, ok := fieldKinds[field.Type]; ok && hf.Type.Kind() != want {
			if !(field.Type == ir.FieldPointer && hf.Type.Kind() == reflect.Uintptr) {
				return &qerrors.Error{
					Phase:  qerrors.PhaseLayout,
					Kind:   qerrors.KindTypeMismatch,
					Object: vt.Name,
					Member: field.Name,
					Detail: "host field " + hf.Name + " has kind " + hf.Type.Kind().String() + ", native is " + string(field.Type),
				}
			}
		}
		if uint32(hf.Offset) != proof.FieldOffs[field.Name] {
			return qerrors.LayoutMismatch(vt.Name, "field %s at offset %d, native offset %d", field.Name, hf.Offset, proof.FieldOffs[field.Name])
		}
	}

	if uint32(host.Size()) != proof.Size {
		return qerrors.LayoutMismatch(vt.Name, "size %d, native size %d", host.Size(), proof.Size)
	}
	if uint32(host.Align()) != proof.Align {
		return qerrors.LayoutMismatch(vt.Name, "alignment %d, native alignment %d", host.Align(), proof.Align)
	}
	if vt.Relocatable && !proof.Relocatable {
		return qerrors.LayoutMismatch(vt.Name, "declared relocatable but contains non-scalar fields")
	}
	return nil
}

// AssertLayout is CheckHost for a static Go type.
func AssertLayout[T any](vt *ir.ValueType) error {
	return CheckHost(vt, reflect.TypeFor[T]())
}

package layout

import (
	"github.com/wippyai/qtbind/ir"
	"github.com/wippyai/qtbind/marshal/internal/abi"
)

// DataModel is the native target's pointer width in bytes.
type DataModel uint32

const (
	// ILP32 is the i386 System V model.
	ILP32 DataModel = 4
	LP64  DataModel = 8
)

// Info is the computed native layout of a value type.
type Info struct {
	FieldOffs   map[string]uint32
	Size        uint32
	Align       uint32
	Relocatable bool
}

type Calculator struct {
	cache map[string]Info
	model DataModel
}

func NewCalculator(model DataModel) *Calculator {
	return &Calculator{
		cache: make(map[string]Info),
		model: model,
	}
}

// Field returns the size and alignment of a primitive field kind.
func (c *Calculator) Field(k ir.FieldKind) Info {
	switch k {
	case ir.FieldBool, ir.FieldInt8, ir.FieldUint8:
		return Info{Size: 1, Align: 1, Relocatable: true}
	case ir.FieldInt16, ir.FieldUint16:
		return Info{Size: 2, Align: 2, Relocatable: true}
	case ir.FieldInt32, ir.FieldUint32, ir.FieldFloat32:
		return Info{Size: 4, Align: 4, Relocatable: true}
	case ir.FieldInt64, ir.FieldUint64, ir.FieldFloat64:
		// i386 System V aligns 8-byte scalars to 4 inside structs, every
		// other supported target aligns them naturally.
		if c.model == ILP32 {
			return Info{Size: 8, Align: 4, Relocatable: true}
		}
		return Info{Size: 8, Align: 8, Relocatable: true}
	case ir.FieldPointer:
		return Info{Size: uint32(c.model), Align: uint32(c.model)}
	default:
		return Info{Size: 0, Align: 1}
	}
}

// Calculate lays out the fields of vt sequentially with natural padding,
// the way a standard-layout C++ struct is laid out.
func (c *Calculator) Calculate(vt *ir.ValueType) Info {
	if cached, ok := c.cache[vt.Name]; ok {
		return cached
	}

	if len(vt.Fields) == 0 {
		return Info{Size: 0, Align: 1, Relocatable: true}
	}

	fieldOffs := make(map[string]uint32, len(vt.Fields))
	maxAlign := uint32(1)
	offset := uint32(0)
	relocatable := true

	for _, field := range vt.Fields {
		fieldLayout := c.Field(field.Type)

		offset = abi.AlignTo(offset, fieldLayout.Align)
		fieldOffs[field.Name] = offset

		maxAlign = abi.MaxAlign(maxAlign, fieldLayout.Align)
		relocatable = relocatable && fieldLayout.Relocatable

		offset += fieldLayout.Size
	}

	info := Info{
		Size:        abi.AlignTo(offset, maxAlign),
		Align:       maxAlign,
		FieldOffs:   fieldOffs,
		Relocatable: relocatable,
	}
	c.cache[vt.Name] = info
	return info
}

package layout

import (
	"testing"

	"github.com/wippyai/qtbind/ir"
)

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator(LP64)

	tests := []struct {
		kind  ir.FieldKind
		size  uint32
		align uint32
	}{
		{ir.FieldBool, 1, 1},
		{ir.FieldInt8, 1, 1},
		{ir.FieldUint8, 1, 1},
		{ir.FieldInt16, 2, 2},
		{ir.FieldUint16, 2, 2},
		{ir.FieldInt32, 4, 4},
		{ir.FieldUint32, 4, 4},
		{ir.FieldFloat32, 4, 4},
		{ir.FieldInt64, 8, 8},
		{ir.FieldUint64, 8, 8},
		{ir.FieldFloat64, 8, 8},
		{ir.FieldPointer, 8, 8},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			info := c.Field(tc.kind)
			if info.Size != tc.size {
				t.Errorf("size: got %d, want %d", info.Size, tc.size)
			}
			if info.Align != tc.align {
				t.Errorf("align: got %d, want %d", info.Align, tc.align)
			}
		})
	}
}

func TestCalculateILP32(t *testing.T) {
	c := NewCalculator(ILP32)
	if info := c.Field(ir.FieldPointer); info.Size != 4 || info.Align != 4 {
		t.Errorf("pointer: got %d/%d, want 4/4", info.Size, info.Align)
	}
	if info := c.Field(ir.FieldInt64); info.Align != 4 {
		t.Errorf("i64 align: got %d, want 4", info.Align)
	}
}

func TestCalculateStruct(t *testing.T) {
	c := NewCalculator(LP64)

	t.Run("empty", func(t *testing.T) {
		info := c.Calculate(&ir.ValueType{Name: "Empty"})
		if info.Size != 0 || info.Align != 1 {
			t.Errorf("got %d/%d, want 0/1", info.Size, info.Align)
		}
	})

	t.Run("point", func(t *testing.T) {
		info := c.Calculate(&ir.ValueType{
			Name:   "QPoint",
			Fields: []ir.Field{{Name: "x", Type: ir.FieldInt32}, {Name: "y", Type: ir.FieldInt32}},
		})
		if info.Size != 8 || info.Align != 4 {
			t.Errorf("got %d/%d, want 8/4", info.Size, info.Align)
		}
		if info.FieldOffs["y"] != 4 {
			t.Errorf("y offset: got %d, want 4", info.FieldOffs["y"])
		}
		if !info.Relocatable {
			t.Error("primitive struct should be relocatable")
		}
	})

	t.Run("mixed_alignment", func(t *testing.T) {
		info := c.Calculate(&ir.ValueType{
			Name: "Mixed",
			Fields: []ir.Field{
				{Name: "a", Type: ir.FieldUint8},
				{Name: "b", Type: ir.FieldUint32},
				{Name: "c", Type: ir.FieldUint8},
			},
		})
		// a at 0, b at 4, c at 8, size rounds to 12
		if info.Size != 12 {
			t.Errorf("size: got %d, want 12", info.Size)
		}
		if info.FieldOffs["b"] != 4 || info.FieldOffs["c"] != 8 {
			t.Errorf("offsets: %v", info.FieldOffs)
		}
	})

	t.Run("rectf", func(t *testing.T) {
		info := c.Calculate(&ir.ValueType{
			Name: "QRectF",
			Fields: []ir.Field{
				{Name: "xp", Type: ir.FieldFloat64},
				{Name: "yp", Type: ir.FieldFloat64},
				{Name: "w", Type: ir.FieldFloat64},
				{Name: "h", Type: ir.FieldFloat64},
			},
		})
		if info.Size != 32 || info.Align != 8 {
			t.Errorf("got %d/%d, want 32/8", info.Size, info.Align)
		}
	})

	t.Run("pointer_not_relocatable", func(t *testing.T) {
		info := c.Calculate(&ir.ValueType{
			Name:   "Holder",
			Fields: []ir.Field{{Name: "flag", Type: ir.FieldBool}, {Name: "data", Type: ir.FieldPointer}},
		})
		if info.Relocatable {
			t.Error("struct with pointer should not be relocatable")
		}
		if info.Size != 16 || info.FieldOffs["data"] != 8 {
			t.Errorf("got size %d, data at %d", info.Size, info.FieldOffs["data"])
		}
	})
}

func TestCalculateCache(t *testing.T) {
	c := NewCalculator(LP64)
	vt := &ir.ValueType{Name: "A", Fields: []ir.Field{{Name: "x", Type: ir.FieldInt16}}}

	first := c.Calculate(vt)
	second := c.Calculate(vt)
	if first.Size != second.Size || first.Align != second.Align {
		t.Error("cached layout differs")
	}
	if _, ok := c.cache["A"]; !ok {
		t.Error("layout was not cached")
	}
}

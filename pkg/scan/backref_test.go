package scan

import (
	"testing"

	"github.com/Ravikin/dno-stats/internal/savegen"
	"github.com/Ravikin/dno-stats/pkg/binfmt"
)

func TestFindBackRef(t *testing.T) {
	fields := int32Fields("wood", "stone")
	buf := savegen.ClassDef(savegen.Junk(20), 7, "Ledger", fields, savegen.Int32s(10, 20))
	refStart := len(buf)
	buf = savegen.BackRef(buf, 99, 7, savegen.Int32s(30, 40))

	def := FindClassDef(buf, "Ledger", fieldNames(fields), 0)
	if def == nil {
		t.Fatal("class definition not found")
	}

	offset := FindBackRef(buf, def.ObjectID, def.DataOffset)
	if offset != refStart+9 {
		t.Fatalf("back-reference offset: got %d, want %d", offset, refStart+9)
	}

	wood, offset, err := binfmt.ReadInt32(buf, offset)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	stone, _, err := binfmt.ReadInt32(buf, offset)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if wood != 30 || stone != 40 {
		t.Errorf("back-referenced values: got %d/%d, want 30/40", wood, stone)
	}
}

func TestFindBackRef_SkipsWrongObjectID(t *testing.T) {
	buf := savegen.Junk(10)
	buf = savegen.BackRef(buf, 50, 8, savegen.Int32s(11, 12)) // other record's reference
	wantStart := len(buf)
	buf = savegen.BackRef(buf, 51, 7, savegen.Int32s(13, 14))

	if got := FindBackRef(buf, 7, 0); got != wantStart+9 {
		t.Errorf("offset: got %d, want %d", got, wantStart+9)
	}
	if got := FindBackRef(buf, 12345, 0); got != -1 {
		t.Errorf("unknown object id: got %d, want -1", got)
	}
}

func TestFindAllBackRefs_StreamOrder(t *testing.T) {
	buf := savegen.Junk(10)
	var wantOffsets []int
	for i := 0; i < 4; i++ {
		wantOffsets = append(wantOffsets, len(buf)+9)
		buf = savegen.BackRef(buf, uint32(60+i), 7, savegen.Int32s(int32(100+i)))
		buf = append(buf, savegen.Junk(5)...)
	}

	offsets := FindAllBackRefs(buf, 7, 0)
	if len(offsets) != 4 {
		t.Fatalf("got %d offsets, want 4", len(offsets))
	}
	for i, offset := range offsets {
		if offset != wantOffsets[i] {
			t.Errorf("offset %d: got %d, want %d", i, offset, wantOffsets[i])
		}
		if i > 0 && offset <= offsets[i-1] {
			t.Errorf("offsets not strictly increasing at %d: %v", i, offsets)
		}
		value, _, err := binfmt.ReadInt32(buf, offset)
		if err != nil {
			t.Fatalf("read at offset %d failed: %v", offset, err)
		}
		if value != int32(100+i) {
			t.Errorf("value %d: got %d, want %d", i, value, 100+i)
		}
	}
}

func TestFindAllBackRefs_Empty(t *testing.T) {
	if offsets := FindAllBackRefs(savegen.Junk(64), 7, 0); len(offsets) != 0 {
		t.Errorf("got %v, want none", offsets)
	}
}

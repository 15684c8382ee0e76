// Package savegen synthesizes BinaryFormatter-shaped byte streams for tests.
// It is the encode-side mirror of pkg/scan and pkg/binfmt and exists only so
// tests can round-trip records through the scanner.
package savegen

import (
	"encoding/binary"
	"math"
)

// Field describes one member of a synthesized class definition.
type Field struct {
	Name     string
	Tag      byte
	PrimType byte   // subtype for primitive / primitive-array tags
	TypeName string // trailing type name for class / system-class tags
}

// AppendVarUint appends the 7-bit group encoding of v.
func AppendVarUint(buf []byte, v uint32) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// AppendString appends a length-prefixed UTF-8 string.
func AppendString(buf []byte, s string) []byte {
	buf = AppendVarUint(buf, uint32(len(s)))
	return append(buf, s...)
}

// AppendUint32 appends v little-endian.
func AppendUint32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}

// ClassDef appends a ClassWithMembersAndTypes-shaped record:
//
//	RecordType(0x05) | ObjectId(4) | ClassName(str) | MemberCount(4) |
//	member names | wire tags | trailing type info | LibraryId(4) | values
func ClassDef(buf []byte, objectID uint32, className string, fields []Field, values []byte) []byte {
	buf = append(buf, 0x05)
	buf = AppendUint32(buf, objectID)
	buf = AppendString(buf, className)
	buf = AppendUint32(buf, uint32(len(fields)))
	for _, f := range fields {
		buf = AppendString(buf, f.Name)
	}
	for _, f := range fields {
		buf = append(buf, f.Tag)
	}
	for _, f := range fields {
		switch f.Tag {
		case 0, 7: // primitive, primitive array
			buf = append(buf, f.PrimType)
		case 4: // class: type name + library reference id
			buf = AppendString(buf, f.TypeName)
			buf = AppendUint32(buf, 2)
		case 3: // system class: type name only
			buf = AppendString(buf, f.TypeName)
		}
	}
	buf = AppendUint32(buf, 2) // library id
	return append(buf, values...)
}

// BackRef appends a ClassWithId-shaped record:
//
//	RecordType(0x01) | ObjectId(4) | MetadataId(4) | values
func BackRef(buf []byte, objectID, metadataID uint32, values []byte) []byte {
	buf = append(buf, 0x01)
	buf = AppendUint32(buf, objectID)
	buf = AppendUint32(buf, metadataID)
	return append(buf, values...)
}

// Int32s renders the values little-endian, back to back.
func Int32s(vals ...int32) []byte {
	var buf []byte
	for _, v := range vals {
		buf = AppendUint32(buf, uint32(v))
	}
	return buf
}

// Float32s renders the values little-endian, back to back.
func Float32s(vals ...float32) []byte {
	var buf []byte
	for _, v := range vals {
		buf = AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

// Junk returns n bytes of deterministic filler that cannot collide with a
// varint length prefix anchor (every byte is zero).
func Junk(n int) []byte {
	return make([]byte, n)
}

// Noise returns n bytes of deterministic pseudo-random filler seeded by seed.
func Noise(n int, seed uint32) []byte {
	buf := make([]byte, n)
	state := seed
	for i := range buf {
		// xorshift32
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		buf[i] = byte(state)
	}
	return buf
}

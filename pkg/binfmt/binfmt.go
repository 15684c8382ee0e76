// Package binfmt decodes the primitive wire encodings found in .NET
// BinaryFormatter save streams: 7-bit variable-length integers,
// length-prefixed UTF-8 strings, and fixed-width little-endian scalars.
//
// All read functions take an offset and return the offset just past the
// decoded value; nothing in this package mutates shared state.
package binfmt

import (
	"encoding/binary"
	"math"
)

// Primitive type codes as they appear in member type metadata.
const (
	PrimBoolean byte = 1
	PrimByte    byte = 2
	PrimDouble  byte = 6
	PrimInt16   byte = 7
	PrimInt32   byte = 8
	PrimInt64   byte = 9
	PrimSingle  byte = 11
)

// ReadVarUint decodes a 7-bit group variable-length unsigned integer. Each
// byte contributes 7 bits, least significant group first; a set high bit
// signals continuation. At most 5 groups are accepted (the uint32 ceiling).
func ReadVarUint(buf []byte, offset int) (uint32, int, error) {
	var value uint32
	var shift uint
	for i := 0; i < 5; i++ {
		if offset < 0 || offset >= len(buf) {
			return 0, 0, ErrMalformedVarint
		}
		b := buf[offset]
		offset++
		value |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return value, offset, nil
		}
		shift += 7
	}
	return 0, 0, ErrMalformedVarint
}

// ReadString decodes a length-prefixed UTF-8 string.
func ReadString(buf []byte, offset int) (string, int, error) {
	n, offset, err := ReadVarUint(buf, offset)
	if err != nil {
		return "", 0, err
	}
	end := offset + int(n)
	if end < offset || end > len(buf) {
		return "", 0, ErrTruncatedString
	}
	return string(buf[offset:end]), end, nil
}

// PrimitiveSize returns the encoded width of a primitive type code, or 0 for
// codes outside the known set.
func PrimitiveSize(code byte) int {
	switch code {
	case PrimBoolean, PrimByte:
		return 1
	case PrimInt16:
		return 2
	case PrimInt32, PrimSingle:
		return 4
	case PrimInt64, PrimDouble:
		return 8
	}
	return 0
}

// ReadPrimitive decodes one fixed-width little-endian value of the given
// primitive type code. Booleans are a single byte, nonzero meaning true.
// Int64 values are returned as int64; JSON output preserves them exactly,
// though JavaScript consumers clip above 2^53.
func ReadPrimitive(buf []byte, offset int, code byte) (interface{}, int, error) {
	size := PrimitiveSize(code)
	if size == 0 {
		return nil, 0, &UnsupportedPrimitiveError{Code: code}
	}
	if offset < 0 || offset+size > len(buf) {
		return nil, 0, ErrShortBuffer
	}
	next := offset + size
	switch code {
	case PrimBoolean:
		return buf[offset] != 0, next, nil
	case PrimByte:
		return buf[offset], next, nil
	case PrimInt16:
		return int16(binary.LittleEndian.Uint16(buf[offset:])), next, nil
	case PrimInt32:
		return int32(binary.LittleEndian.Uint32(buf[offset:])), next, nil
	case PrimInt64:
		return int64(binary.LittleEndian.Uint64(buf[offset:])), next, nil
	case PrimSingle:
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:])), next, nil
	case PrimDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(buf[offset:])), next, nil
	}
	return nil, 0, &UnsupportedPrimitiveError{Code: code}
}

// ReadInt32 decodes a 4-byte little-endian signed integer.
func ReadInt32(buf []byte, offset int) (int32, int, error) {
	if offset < 0 || offset+4 > len(buf) {
		return 0, 0, ErrShortBuffer
	}
	return int32(binary.LittleEndian.Uint32(buf[offset:])), offset + 4, nil
}

// ReadUint32 decodes a 4-byte little-endian unsigned integer.
func ReadUint32(buf []byte, offset int) (uint32, int, error) {
	if offset < 0 || offset+4 > len(buf) {
		return 0, 0, ErrShortBuffer
	}
	return binary.LittleEndian.Uint32(buf[offset:]), offset + 4, nil
}

// ReadFloat32 decodes a 4-byte little-endian IEEE 754 single.
func ReadFloat32(buf []byte, offset int) (float32, int, error) {
	if offset < 0 || offset+4 > len(buf) {
		return 0, 0, ErrShortBuffer
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:])), offset + 4, nil
}

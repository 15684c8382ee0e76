// Package scan locates known record types inside otherwise unparsed
// BinaryFormatter byte streams. The stream's object graph is never modeled;
// every lookup is a fresh linear scan, which trades speed for robustness
// against the parts of the format this extractor does not understand.
package scan

import (
	"encoding/binary"
	"strings"

	"github.com/Ravikin/dno-stats/pkg/binfmt"
)

// FindClassDef searches buf for a self-describing class definition whose name
// is className and whose schema matches expectedFields exactly, starting at
// from. It returns nil when no valid definition exists at or after from.
//
// The class name bytes recur coincidentally in dense binary data, so each
// candidate must pass two filters before its schema is parsed in full: the
// 4-byte member count must equal len(expectedFields), and the first member
// name must equal expectedFields[0]. A rejected candidate resumes the search
// at candidate+1, not past the whole match, since false positives can be
// adjacent.
func FindClassDef(buf []byte, className string, expectedFields []string, from int) *ClassDef {
	needle := []byte(className)
	if len(needle) == 0 || len(expectedFields) == 0 {
		return nil
	}
	pos := from
	for {
		pos = binfmt.Find(buf, needle, pos)
		if pos < 0 {
			return nil
		}
		if def := parseCandidate(buf, pos, len(needle), className, expectedFields); def != nil {
			return def
		}
		pos++
	}
}

// parseCandidate attempts to parse a full class definition whose name bytes
// start at pos. Any parse failure rejects the candidate.
func parseCandidate(buf []byte, pos, nameLen int, className string, expectedFields []string) *ClassDef {
	after := pos + nameLen
	if after+4 > len(buf) {
		return nil
	}
	count := int(binary.LittleEndian.Uint32(buf[after:]))
	if count != len(expectedFields) {
		return nil
	}

	first, _, err := binfmt.ReadString(buf, after+4)
	if err != nil || first != expectedFields[0] {
		return nil
	}

	offset := after + 4
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name, next, err := binfmt.ReadString(buf, offset)
		if err != nil {
			return nil
		}
		names = append(names, name)
		offset = next
	}

	if offset+count > len(buf) {
		return nil
	}
	tags := make([]byte, count)
	copy(tags, buf[offset:offset+count])
	offset += count

	// Tag-specific trailing metadata: primitives carry a subtype byte,
	// class references a type name plus library id, system classes a type
	// name only, strings nothing.
	prims := make([]byte, count)
	for i, tag := range tags {
		switch tag {
		case TagPrimitive, TagPrimitiveArray:
			if offset >= len(buf) {
				return nil
			}
			prims[i] = buf[offset]
			offset++
		case TagClass:
			_, next, err := binfmt.ReadString(buf, offset)
			if err != nil {
				return nil
			}
			offset = next + 4
		case TagSystemClass:
			_, next, err := binfmt.ReadString(buf, offset)
			if err != nil {
				return nil
			}
			offset = next
		case TagString:
			// no additional info
		}
	}

	// Trailing library id of the record itself.
	offset += 4
	if offset > len(buf) {
		return nil
	}

	return &ClassDef{
		ClassName:  className,
		FieldNames: names,
		Tags:       tags,
		PrimTypes:  prims,
		DataOffset: offset,
		ObjectID:   resolveObjectID(buf, pos, className),
	}
}

// resolveObjectID recovers the instance's object id by walking backward from
// the class name occurrence, looking for a length-prefixed string ending with
// className; the id is the 4 little-endian bytes immediately before that
// prefix. The window is deliberately small: see objectIDWindow. Returns 0
// when no anchor is found, which callers must treat as "no identity".
func resolveObjectID(buf []byte, pos int, className string) uint32 {
	for p := pos - 1; p >= 0 && p > pos-objectIDWindow; p-- {
		n, end, err := binfmt.ReadVarUint(buf, p)
		if err != nil {
			continue
		}
		strEnd := end + int(n)
		if strEnd < end || strEnd > len(buf) {
			continue
		}
		if !strings.HasSuffix(string(buf[end:strEnd]), className) {
			continue
		}
		if p < 4 {
			return 0
		}
		return binary.LittleEndian.Uint32(buf[p-4:])
	}
	return 0
}

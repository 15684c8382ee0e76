package scan

import (
	"encoding/binary"

	"github.com/Ravikin/dno-stats/pkg/binfmt"
)

// Back-reference record layout: Marker(0x01) | ObjectId(4) | MetadataId(4) |
// field values. The metadata id names the class definition whose schema the
// compact record reuses.
const backRefMarker byte = 0x01

// FindBackRef returns the offset where field values of the first
// back-reference to objectID begin, searching at or after from, or -1.
func FindBackRef(buf []byte, objectID uint32, from int) int {
	pos := from
	for pos >= 0 && pos <= len(buf)-9 {
		pos = binfmt.FindByte(buf, backRefMarker, pos)
		if pos < 0 || pos > len(buf)-9 {
			return -1
		}
		if binary.LittleEndian.Uint32(buf[pos+5:]) == objectID {
			return pos + 9
		}
		pos++
	}
	return -1
}

// FindAllBackRefs returns the field-value offsets of every back-reference to
// objectID at or after from, in stream order. Stream order corresponds to
// in-game chronological order for incrementally appended records.
func FindAllBackRefs(buf []byte, objectID uint32, from int) []int {
	var offsets []int
	pos := from
	for {
		off := FindBackRef(buf, objectID, pos)
		if off < 0 {
			break
		}
		offsets = append(offsets, off)
		pos = off
	}
	return offsets
}

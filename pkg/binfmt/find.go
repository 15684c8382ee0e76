package binfmt

import "bytes"

// Find returns the offset of the first occurrence of needle at or after from,
// or -1 when the needle does not occur. Save files are small enough that the
// naive scan is fine; this runs a handful of times per extraction.
func Find(buf, needle []byte, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(buf) {
		return -1
	}
	i := bytes.Index(buf[from:], needle)
	if i < 0 {
		return -1
	}
	return from + i
}

// FindByte returns the offset of the first occurrence of value at or after
// from, or -1.
func FindByte(buf []byte, value byte, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(buf) {
		return -1
	}
	i := bytes.IndexByte(buf[from:], value)
	if i < 0 {
		return -1
	}
	return from + i
}

package scan

// Member wire tags (BinaryFormatter MemberTypeInfo).
const (
	TagPrimitive      byte = 0
	TagString         byte = 1
	TagSystemClass    byte = 3
	TagClass          byte = 4
	TagPrimitiveArray byte = 7
)

// objectIDWindow bounds the backward search for a class definition's object
// id. An unbounded scan over dense binary data produces false anchors; a
// missed anchor only disables back-reference decoding for that record.
const objectIDWindow = 50

// ClassDef is a located occurrence of a named record type inside a byte
// stream: its resolved field schema and the offset where the instance's field
// values begin.
type ClassDef struct {
	ClassName  string
	FieldNames []string
	Tags       []byte
	PrimTypes  []byte // primitive subtype per field, 0 when the field is not primitive
	DataOffset int
	ObjectID   uint32 // identity for back-reference lookup, 0 when unresolved
}

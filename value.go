package bolt

import "fmt"

// Kind tags the variant a Value currently holds. The zero Kind is NullKind,
// so a zero-value Value is already a well-formed NULL.
type Kind uint8

const (
	NullKind Kind = iota
	Bit             // boolean scalar; packs to FALSE/TRUE
	Byte            // single raw byte; memory-only, no PackStream marker of its own
	BitArray        // packed bits; memory-only
	ByteArrayKind   // raw bytes; packs via the "bytes" grammar
	Num8
	Num16
	Num32
	Num64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Num8Array
	Num16Array
	Num32Array
	Num64Array
	Int8Array
	Int16Array
	Int32Array
	Int64Array
	Float32Array
	Float64Array
	String8
	String8Array
	List
	Dictionary8
	Structure
	StructureArray
	Request
	Summary
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "Null"
	case Bit:
		return "Bit"
	case Byte:
		return "Byte"
	case BitArray:
		return "BitArray"
	case ByteArrayKind:
		return "ByteArray"
	case Num8:
		return "Num8"
	case Num16:
		return "Num16"
	case Num32:
		return "Num32"
	case Num64:
		return "Num64"
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case Num8Array:
		return "Num8Array"
	case Num16Array:
		return "Num16Array"
	case Num32Array:
		return "Num32Array"
	case Num64Array:
		return "Num64Array"
	case Int8Array:
		return "Int8Array"
	case Int16Array:
		return "Int16Array"
	case Int32Array:
		return "Int32Array"
	case Int64Array:
		return "Int64Array"
	case Float32Array:
		return "Float32Array"
	case Float64Array:
		return "Float64Array"
	case String8:
		return "String8"
	case String8Array:
		return "String8Array"
	case List:
		return "List"
	case Dictionary8:
		return "Dictionary8"
	case Structure:
		return "Structure"
	case StructureArray:
		return "StructureArray"
	case Request:
		return "Request"
	case Summary:
		return "Summary"
	default:
		return "Unknown"
	}
}

// Well-known structure/request/summary subtype codes.
const (
	TagINIT       byte = 0x01
	TagACKFailure byte = 0x0E
	TagRESET      byte = 0x0F
	TagRUN        byte = 0x10
	TagDiscardAll byte = 0x2F
	TagPullAll    byte = 0x3F
	TagSUCCESS    byte = 0x70
	TagRECORD     byte = 0x71
	TagIGNORED    byte = 0x7E
	TagFAILURE    byte = 0x7F

	TagNode                 byte = 0x4E
	TagRelationship         byte = 0x52
	TagUnboundRelationship  byte = 0x72
	TagPath                 byte = 0x50
)

const inlineCapacity = 16

// Value is the single dynamically-typed container every value crossing the
// Bolt wire (or held as decoded result data) is modeled as. The
// inline/heap distinction is a private storage detail: whichever mutator
// is called, size*stride either fits inlineCapacity bytes in-struct or is
// promoted to a heap buffer counted by the allocation accounting in
// memory.go.
type Value struct {
	kind    Kind
	subtype byte
	size    int32

	inline [inlineCapacity]byte
	heap   []byte

	children []Value  // LIST elements / STRUCTURE(/REQUEST/SUMMARY) fields / DICTIONARY8 values / one nested Structure per StructureArray entry
	keys     []string // DICTIONARY8 keys, parallel to children
	strs     []string // STRING8_ARRAY elements
}

// Kind returns the value's current type tag.
func (v *Value) Kind() Kind { return v.kind }

// Subtype returns the structure/request/summary tag code; meaningless for
// other kinds.
func (v *Value) Subtype() byte { return v.subtype }

// Size returns the element count for containers, the length for
// strings/byte arrays, or 1 for scalars.
func (v *Value) Size() int32 { return v.size }

func stride(kind Kind) int {
	switch kind {
	case Bit, Byte, BitArray, ByteArrayKind, Num8, Int8, Num8Array, Int8Array, String8:
		return 1
	case Num16, Int16, Num16Array, Int16Array:
		return 2
	case Num32, Int32, Float32, Num32Array, Int32Array, Float32Array:
		return 4
	case Num64, Int64, Float64, Num64Array, Int64Array, Float64Array:
		return 8
	default:
		return 0
	}
}

// bytes returns the raw payload slice for scalar/array/string kinds,
// whichever of inline/heap is currently backing it. The returned slice is
// valid only until the next mutation of v.
func (v *Value) bytes() []byte {
	n := int(v.size) * stride(v.kind)
	if v.heap != nil {
		return v.heap[:n]
	}
	return v.inline[:n]
}

// destroy releases v's payload (recursively, for containers) and leaves it
// as a zero-valued NULL. Parent->child ownership is always a tree, so
// there is nothing else to release.
func (v *Value) destroy() {
	for i := range v.children {
		v.children[i].destroy()
	}
	if v.heap != nil {
		memFree(v.heap)
		v.heap = nil
	}
	v.children = nil
	v.keys = nil
	v.strs = nil
	v.kind = NullKind
	v.subtype = 0
	v.size = 0
	v.inline = [inlineCapacity]byte{}
}

// Destroy releases v's payload and resets it to NULL. Safe to call on an
// already-NULL value.
func (v *Value) Destroy() { v.destroy() }

// installScalarArray formats v as kind with the given size, backing it
// with an inline buffer when size*stride fits, or a freshly allocated heap
// buffer otherwise. Any previous payload is destroyed first.
func (v *Value) installScalarArray(kind Kind, size int32, data []byte) {
	v.destroy()
	v.kind = kind
	v.size = size
	n := int(size) * stride(kind)
	if n <= inlineCapacity {
		copy(v.inline[:n], data)
		return
	}
	v.heap = memAlloc(n)
	copy(v.heap, data)
}

// --- scalar mutators ---

func (v *Value) ToNull() { v.destroy() }

func (v *Value) ToBoolean(b bool) {
	var x byte
	if b {
		x = 1
	}
	v.installScalarArray(Bit, 1, []byte{x})
}

func (v *Value) ToByte(x byte) { v.installScalarArray(Byte, 1, []byte{x}) }

func (v *Value) ToNum8(x uint8) { v.installScalarArray(Num8, 1, []byte{x}) }

func (v *Value) ToNum16(x uint16) {
	v.installScalarArray(Num16, 1, beUint16(x))
}

func (v *Value) ToNum32(x uint32) {
	v.installScalarArray(Num32, 1, beUint32(x))
}

func (v *Value) ToNum64(x uint64) {
	v.installScalarArray(Num64, 1, beUint64(x))
}

func (v *Value) ToInt8(x int8) { v.installScalarArray(Int8, 1, []byte{byte(x)}) }

func (v *Value) ToInt16(x int16) {
	v.installScalarArray(Int16, 1, beUint16(uint16(x)))
}

func (v *Value) ToInt32(x int32) {
	v.installScalarArray(Int32, 1, beUint32(uint32(x)))
}

func (v *Value) ToInt64(x int64) {
	v.installScalarArray(Int64, 1, beUint64(uint64(x)))
}

func (v *Value) ToFloat32(x float32) {
	v.installScalarArray(Float32, 1, beUint32(float32bits(x)))
}

func (v *Value) ToFloat64(x float64) {
	v.installScalarArray(Float64, 1, beUint64(float64bits(x)))
}

// --- scalar accessors ---

func (v *Value) Boolean() bool { return v.bytes()[0] != 0 }
func (v *Value) ByteValue() byte { return v.bytes()[0] }
func (v *Value) Num8Value() uint8 { return v.bytes()[0] }
func (v *Value) Num16Value() uint16 { return beGetUint16(v.bytes()) }
func (v *Value) Num32Value() uint32 { return beGetUint32(v.bytes()) }
func (v *Value) Num64Value() uint64 { return beGetUint64(v.bytes()) }
func (v *Value) Int8Value() int8 { return int8(v.bytes()[0]) }
func (v *Value) Int16Value() int16 { return int16(beGetUint16(v.bytes())) }
func (v *Value) Int32Value() int32 { return int32(beGetUint32(v.bytes())) }
func (v *Value) Int64Value() int64 { return int64(beGetUint64(v.bytes())) }
func (v *Value) Float32Value() float32 { return float32frombits(beGetUint32(v.bytes())) }
func (v *Value) Float64Value() float64 { return float64frombits(beGetUint64(v.bytes())) }

// AsInt64 widens whichever INT* kind v holds to int64, used by the codec to
// pick the narrowest marker that still round-trips the value.
func (v *Value) AsInt64() int64 {
	switch v.kind {
	case Int8:
		return int64(v.Int8Value())
	case Int16:
		return int64(v.Int16Value())
	case Int32:
		return int64(v.Int32Value())
	case Int64:
		return v.Int64Value()
	default:
		panic(fmt.Sprintf("AsInt64 called on %s", v.kind))
	}
}

// --- array mutators ---

func (v *Value) ToByteArray(data []byte) { v.installScalarArray(ByteArrayKind, int32(len(data)), data) }
func (v *Value) ToBitArray(data []byte)  { v.installScalarArray(BitArray, int32(len(data)), data) }

func (v *Value) ToNum8Array(data []uint8) { v.installScalarArray(Num8Array, int32(len(data)), data) }

func (v *Value) ToNum16Array(data []uint16) {
	buf := make([]byte, len(data)*2)
	for i, x := range data {
		copy(buf[i*2:], beUint16(x))
	}
	v.installScalarArray(Num16Array, int32(len(data)), buf)
}

func (v *Value) ToNum32Array(data []uint32) {
	buf := make([]byte, len(data)*4)
	for i, x := range data {
		copy(buf[i*4:], beUint32(x))
	}
	v.installScalarArray(Num32Array, int32(len(data)), buf)
}

func (v *Value) ToNum64Array(data []uint64) {
	buf := make([]byte, len(data)*8)
	for i, x := range data {
		copy(buf[i*8:], beUint64(x))
	}
	v.installScalarArray(Num64Array, int32(len(data)), buf)
}

func (v *Value) ToInt8Array(data []int8) {
	buf := make([]byte, len(data))
	for i, x := range data {
		buf[i] = byte(x)
	}
	v.installScalarArray(Int8Array, int32(len(data)), buf)
}

func (v *Value) ToInt16Array(data []int16) {
	buf := make([]byte, len(data)*2)
	for i, x := range data {
		copy(buf[i*2:], beUint16(uint16(x)))
	}
	v.installScalarArray(Int16Array, int32(len(data)), buf)
}

func (v *Value) ToInt32Array(data []int32) {
	buf := make([]byte, len(data)*4)
	for i, x := range data {
		copy(buf[i*4:], beUint32(uint32(x)))
	}
	v.installScalarArray(Int32Array, int32(len(data)), buf)
}

func (v *Value) ToInt64Array(data []int64) {
	buf := make([]byte, len(data)*8)
	for i, x := range data {
		copy(buf[i*8:], beUint64(uint64(x)))
	}
	v.installScalarArray(Int64Array, int32(len(data)), buf)
}

func (v *Value) ToFloat32Array(data []float32) {
	buf := make([]byte, len(data)*4)
	for i, x := range data {
		copy(buf[i*4:], beUint32(float32bits(x)))
	}
	v.installScalarArray(Float32Array, int32(len(data)), buf)
}

func (v *Value) ToFloat64Array(data []float64) {
	buf := make([]byte, len(data)*8)
	for i, x := range data {
		copy(buf[i*8:], beUint64(float64bits(x)))
	}
	v.installScalarArray(Float64Array, int32(len(data)), buf)
}

// --- array accessors ---

func (v *Value) Num8ArrayAt(i int32) uint8   { return v.bytes()[i] }
func (v *Value) Num16ArrayAt(i int32) uint16 { return beGetUint16(v.bytes()[i*2:]) }
func (v *Value) Num32ArrayAt(i int32) uint32 { return beGetUint32(v.bytes()[i*4:]) }
func (v *Value) Num64ArrayAt(i int32) uint64 { return beGetUint64(v.bytes()[i*8:]) }
func (v *Value) Int8ArrayAt(i int32) int8    { return int8(v.bytes()[i]) }
func (v *Value) Int16ArrayAt(i int32) int16  { return int16(beGetUint16(v.bytes()[i*2:])) }
func (v *Value) Int32ArrayAt(i int32) int32  { return int32(beGetUint32(v.bytes()[i*4:])) }
func (v *Value) Int64ArrayAt(i int32) int64  { return int64(beGetUint64(v.bytes()[i*8:])) }
func (v *Value) Float32ArrayAt(i int32) float32 {
	return float32frombits(beGetUint32(v.bytes()[i*4:]))
}
func (v *Value) Float64ArrayAt(i int32) float64 {
	return float64frombits(beGetUint64(v.bytes()[i*8:]))
}
func (v *Value) ByteArrayAt(i int32) byte { return v.bytes()[i] }

// --- string ---

// ToString8 formats v as a UTF-8 string. The byte content may contain
// embedded zero bytes and carries no required terminator.
func (v *Value) ToString8(s string) {
	v.installScalarArray(String8, int32(len(s)), []byte(s))
}

func (v *Value) String8Value() string { return string(v.bytes()) }

// ToString8Array formats v as a homogeneous list of strings, avoiding
// per-element Value boxing the way the numeric array kinds do for numbers.
func (v *Value) ToString8Array(strs []string) {
	v.destroy()
	v.kind = String8Array
	v.size = int32(len(strs))
	v.strs = append([]string(nil), strs...)
}

func (v *Value) String8ArrayAt(i int32) string { return v.strs[i] }

// --- containers ---

// ToList formats v as an empty LIST of the given size, new slots
// default-initialized to NULL.
func (v *Value) ToList(size int32) {
	v.destroy()
	v.kind = List
	v.size = size
	v.children = make([]Value, size)
}

// ListAt returns a pointer to list element i, owned by v.
func (v *Value) ListAt(i int32) *Value { return &v.children[i] }

// ResizeList grows or shrinks a LIST in place: grown slots default to
// NULL, shrunk slots are destroyed first.
func (v *Value) ResizeList(size int32) {
	if v.kind != List {
		panic("ResizeList on non-LIST value")
	}
	v.resizeChildren(size)
}

func (v *Value) resizeChildren(size int32) {
	if size < v.size {
		for i := size; i < v.size; i++ {
			v.children[i].destroy()
		}
		v.children = v.children[:size]
	} else if size > v.size {
		v.children = append(v.children, make([]Value, size-v.size)...)
	}
	v.size = size
}

// ToDictionary8 formats v as an empty DICTIONARY8 of the given size; keys
// start empty and values NULL, in insertion order.
func (v *Value) ToDictionary8(size int32) {
	v.destroy()
	v.kind = Dictionary8
	v.size = size
	v.children = make([]Value, size)
	v.keys = make([]string, size)
}

// DictSetKey reuses slot i's key storage; the associated value slot is
// left untouched.
func (v *Value) DictSetKey(i int32, key string) { v.keys[i] = key }

func (v *Value) DictKeyAt(i int32) string    { return v.keys[i] }
func (v *Value) DictValueAt(i int32) *Value  { return &v.children[i] }

// ToStructure formats v as a STRUCTURE carrying subtype and size fields,
// all NULL until populated via StructFieldAt.
func (v *Value) ToStructure(subtype byte, size int32) {
	v.destroy()
	v.kind = Structure
	v.subtype = subtype
	v.size = size
	v.children = make([]Value, size)
}

func (v *Value) StructFieldAt(i int32) *Value { return &v.children[i] }

// ToRequest / ToSummary are STRUCTURE with a distinguished tag class:
// client-bound vs server-bound messages.
func (v *Value) ToRequest(subtype byte, size int32) {
	v.destroy()
	v.kind = Request
	v.subtype = subtype
	v.size = size
	v.children = make([]Value, size)
}

func (v *Value) ToSummary(subtype byte, size int32) {
	v.destroy()
	v.kind = Summary
	v.subtype = subtype
	v.size = size
	v.children = make([]Value, size)
}

// ToStructureArray formats v as size structures of identical subtype; each
// element is itself a STRUCTURE Value reachable via StructArrayAt.
func (v *Value) ToStructureArray(subtype byte, size int32) {
	v.destroy()
	v.kind = StructureArray
	v.subtype = subtype
	v.size = size
	v.children = make([]Value, size)
}

// ResizeStructureArray grows or shrinks a STRUCTURE_ARRAY in place.
func (v *Value) ResizeStructureArray(size int32) {
	if v.kind != StructureArray {
		panic("ResizeStructureArray on non-STRUCTURE_ARRAY value")
	}
	v.resizeChildren(size)
}

// StructArrayAt returns the j'th field of the i'th structure in a
// STRUCTURE_ARRAY, formatting that structure (subtype, fieldCount) lazily
// the first time it is touched.
func (v *Value) StructArrayAt(i, j int32, fieldCount int32) *Value {
	entry := &v.children[i]
	if entry.kind != Structure {
		entry.ToStructure(v.subtype, fieldCount)
	}
	return entry.StructFieldAt(j)
}

package bolt

import (
	"bytes"
	"fmt"
	"io"
)

// WriteTo renders v as debug text: scalars as "kind(value)", arrays as
// "kind[v0, v1, ...]". This is purely a debug aid and is never used for
// wire encoding.
func (v *Value) WriteTo(w io.Writer) (n int64, err error) {
	var s string
	switch v.kind {
	case NullKind:
		s = "null"
	case Bit:
		s = fmt.Sprintf("bit(%t)", v.Boolean())
	case Byte:
		s = fmt.Sprintf("byte(%d)", v.ByteValue())
	case BitArray:
		s = writeArray("bit", int(v.size), func(i int) string { return fmt.Sprintf("%d", v.ByteArrayAt(int32(i))) })
	case ByteArrayKind:
		s = writeArray("b", int(v.size), func(i int) string { return fmt.Sprintf("%02x", v.ByteArrayAt(int32(i))) })
	case Num8:
		s = fmt.Sprintf("n8(%d)", v.Num8Value())
	case Num16:
		s = fmt.Sprintf("n16(%d)", v.Num16Value())
	case Num32:
		s = fmt.Sprintf("n32(%d)", v.Num32Value())
	case Num64:
		s = fmt.Sprintf("n64(%d)", v.Num64Value())
	case Int8:
		s = fmt.Sprintf("i8(%d)", v.Int8Value())
	case Int16:
		s = fmt.Sprintf("i16(%d)", v.Int16Value())
	case Int32:
		s = fmt.Sprintf("i32(%d)", v.Int32Value())
	case Int64:
		s = fmt.Sprintf("i64(%d)", v.Int64Value())
	case Float32:
		s = fmt.Sprintf("f32(%g)", v.Float32Value())
	case Float64:
		s = fmt.Sprintf("f64(%g)", v.Float64Value())
	case Num8Array:
		s = writeArray("n8", int(v.size), func(i int) string { return fmt.Sprintf("%d", v.Num8ArrayAt(int32(i))) })
	case Num16Array:
		s = writeArray("n16", int(v.size), func(i int) string { return fmt.Sprintf("%d", v.Num16ArrayAt(int32(i))) })
	case Num32Array:
		s = writeArray("n32", int(v.size), func(i int) string { return fmt.Sprintf("%d", v.Num32ArrayAt(int32(i))) })
	case Num64Array:
		s = writeArray("n64", int(v.size), func(i int) string { return fmt.Sprintf("%d", v.Num64ArrayAt(int32(i))) })
	case Int8Array:
		s = writeArray("i8", int(v.size), func(i int) string { return fmt.Sprintf("%d", v.Int8ArrayAt(int32(i))) })
	case Int16Array:
		s = writeArray("i16", int(v.size), func(i int) string { return fmt.Sprintf("%d", v.Int16ArrayAt(int32(i))) })
	case Int32Array:
		s = writeArray("i32", int(v.size), func(i int) string { return fmt.Sprintf("%d", v.Int32ArrayAt(int32(i))) })
	case Int64Array:
		s = writeArray("i64", int(v.size), func(i int) string { return fmt.Sprintf("%d", v.Int64ArrayAt(int32(i))) })
	case Float32Array:
		s = writeArray("f32", int(v.size), func(i int) string { return fmt.Sprintf("%g", v.Float32ArrayAt(int32(i))) })
	case Float64Array:
		s = writeArray("f64", int(v.size), func(i int) string { return fmt.Sprintf("%g", v.Float64ArrayAt(int32(i))) })
	case String8:
		s = fmt.Sprintf("s(%q)", v.String8Value())
	case String8Array:
		s = writeArray("s", int(v.size), func(i int) string { return fmt.Sprintf("%q", v.String8ArrayAt(int32(i))) })
	case List:
		s = writeChildren("list", v.children)
	case Dictionary8:
		s = writeDict(v.keys, v.children)
	case Structure, Request, Summary:
		s = fmt.Sprintf("%s<0x%02x>%s", v.kind, v.subtype, writeFields(v.children))
	case StructureArray:
		s = writeArray(fmt.Sprintf("structure<0x%02x>", v.subtype), int(v.size), func(i int) string {
			return writeFields(v.children[i].children)
		})
	default:
		s = fmt.Sprintf("<%s>", v.kind)
	}
	written, err := io.WriteString(w, s)
	return int64(written), err
}

func writeArray(prefix string, size int, at func(int) string) string {
	s := prefix + "["
	for i := 0; i < size; i++ {
		if i > 0 {
			s += ", "
		}
		s += at(i)
	}
	return s + "]"
}

func writeChildren(prefix string, children []Value) string {
	s := prefix + "["
	for i := range children {
		if i > 0 {
			s += ", "
		}
		var b bytes.Buffer
		children[i].WriteTo(&b)
		s += b.String()
	}
	return s + "]"
}

func writeFields(children []Value) string {
	return writeChildren("", children)
}

func writeDict(keys []string, values []Value) string {
	s := "{"
	for i := range keys {
		if i > 0 {
			s += ", "
		}
		var b bytes.Buffer
		values[i].WriteTo(&b)
		s += fmt.Sprintf("%q: %s", keys[i], b.String())
	}
	return s + "}"
}

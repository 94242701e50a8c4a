package bolt

import "testing"

func TestValueZeroValueIsNull(t *testing.T) {
	var v Value
	if v.Kind() != NullKind {
		t.Fatalf("zero Value kind = %s, want Null", v.Kind())
	}
}

func TestValueInlineVsHeapThreshold(t *testing.T) {
	before := LiveBytes()

	var small Value
	small.ToByteArray(make([]byte, inlineCapacity))
	if LiveBytes() != before {
		t.Fatalf("a %d-byte array should stay inline, LiveBytes moved by %d", inlineCapacity, LiveBytes()-before)
	}
	small.destroy()

	var big Value
	big.ToByteArray(make([]byte, inlineCapacity+1))
	if LiveBytes() != before+int64(inlineCapacity+1) {
		t.Fatalf("a %d-byte array should be heap-backed, LiveBytes = %d, want %d", inlineCapacity+1, LiveBytes(), before+int64(inlineCapacity+1))
	}
	big.destroy()
	if LiveBytes() != before {
		t.Fatalf("LiveBytes after destroy = %d, want %d", LiveBytes(), before)
	}
}

func TestValueScalarMutatorsAndAccessors(t *testing.T) {
	var v Value
	v.ToInt32(-42)
	if v.Kind() != Int32 || v.Int32Value() != -42 {
		t.Fatalf("Int32 round trip = %s %d", v.Kind(), v.Int32Value())
	}

	v.ToFloat64(2.25)
	if v.Kind() != Float64 || v.Float64Value() != 2.25 {
		t.Fatalf("Float64 round trip = %s %g", v.Kind(), v.Float64Value())
	}

	v.ToBoolean(true)
	if !v.Boolean() {
		t.Fatal("Boolean() = false, want true")
	}
}

func TestValueListResize(t *testing.T) {
	var v Value
	v.ToList(2)
	v.ListAt(0).ToInt64(1)
	v.ListAt(1).ToInt64(2)

	v.ResizeList(4)
	if v.Size() != 4 {
		t.Fatalf("Size after grow = %d, want 4", v.Size())
	}
	if v.ListAt(0).Int64Value() != 1 || v.ListAt(1).Int64Value() != 2 {
		t.Fatal("existing elements disturbed by grow")
	}
	if v.ListAt(2).Kind() != NullKind {
		t.Fatalf("grown slot kind = %s, want Null", v.ListAt(2).Kind())
	}

	v.ResizeList(1)
	if v.Size() != 1 {
		t.Fatalf("Size after shrink = %d, want 1", v.Size())
	}
}

func TestValueDictionary(t *testing.T) {
	var v Value
	v.ToDictionary8(2)
	v.DictSetKey(0, "a")
	v.DictValueAt(0).ToInt64(1)
	v.DictSetKey(1, "b")
	v.DictValueAt(1).ToString8("two")

	if v.DictKeyAt(0) != "a" || v.DictValueAt(0).Int64Value() != 1 {
		t.Fatal("dictionary slot 0 mismatch")
	}
	if v.DictKeyAt(1) != "b" || v.DictValueAt(1).String8Value() != "two" {
		t.Fatal("dictionary slot 1 mismatch")
	}
}

func TestValueStructureArray(t *testing.T) {
	var v Value
	v.ToStructureArray(TagNode, 2)
	v.StructArrayAt(0, 0, 1).ToInt64(100)
	v.StructArrayAt(1, 0, 1).ToInt64(200)

	if v.Kind() != StructureArray || v.Subtype() != TagNode {
		t.Fatalf("kind=%s subtype=0x%02x", v.Kind(), v.Subtype())
	}
	if v.StructArrayAt(0, 0, 1).Int64Value() != 100 {
		t.Fatal("structure array element 0 mismatch")
	}
}

func TestValueDestroyIsIdempotent(t *testing.T) {
	var v Value
	v.ToString8("throwaway")
	v.destroy()
	v.destroy()
	if v.Kind() != NullKind {
		t.Fatalf("kind after double destroy = %s, want Null", v.Kind())
	}
}

func TestValueWriteTo(t *testing.T) {
	var v Value
	v.ToInt64(7)
	var b []byte
	writer := &byteSliceWriter{&b}
	if _, err := v.WriteTo(writer); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if string(b) != "i64(7)" {
		t.Fatalf("WriteTo = %q, want i64(7)", b)
	}
}

type byteSliceWriter struct{ buf *[]byte }

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

package bolt

import "testing"

func roundTrip(t *testing.T, in *Value) *Value {
	t.Helper()
	buf := NewBuffer(64)
	if err := Load(buf, in); err != nil {
		t.Fatalf("Load: %v", err)
	}
	out := &Value{}
	if err := Unload(buf, out); err != nil {
		t.Fatalf("Unload: %v", err)
	}
	return out
}

func TestPackstreamScalarRoundTrip(t *testing.T) {
	var null Value
	if got := roundTrip(t, &null); got.Kind() != NullKind {
		t.Fatalf("null round trip kind = %s", got.Kind())
	}

	var b Value
	b.ToBoolean(true)
	if got := roundTrip(t, &b); got.Kind() != Bit || !got.Boolean() {
		t.Fatalf("bool round trip = %v", got.Boolean())
	}

	var f Value
	f.ToFloat64(3.5)
	if got := roundTrip(t, &f); got.Kind() != Float64 || got.Float64Value() != 3.5 {
		t.Fatalf("float64 round trip = %v", got.Float64Value())
	}

	var s Value
	s.ToString8("hello, bolt")
	if got := roundTrip(t, &s); got.Kind() != String8 || got.String8Value() != "hello, bolt" {
		t.Fatalf("string round trip = %q", got.String8Value())
	}
}

// TestPackstreamIntegerMinimality checks that Load always picks the
// shortest marker form for a given magnitude, regardless of the nominal
// INT* kind the value is stored as.
func TestPackstreamIntegerMinimality(t *testing.T) {
	cases := []struct {
		value   int64
		wantLen int // total encoded bytes: marker plus payload (1 for tiny int)
	}{
		{0, 1},
		{-16, 1},
		{127, 1},
		{-17, 2},
		{-128, 2},
		{200, 3},
		{32000, 3},
		{100000, 5},
		{1 << 40, 9},
	}
	for _, c := range cases {
		var v Value
		v.ToInt64(c.value)
		buf := NewBuffer(16)
		if err := Load(buf, &v); err != nil {
			t.Fatalf("Load(%d): %v", c.value, err)
		}
		if buf.Len() != c.wantLen {
			t.Fatalf("Load(%d) wrote %d bytes, want %d", c.value, buf.Len(), c.wantLen)
		}
		var out Value
		if err := Unload(buf, &out); err != nil {
			t.Fatalf("Unload(%d): %v", c.value, err)
		}
		if out.Int64Value() != c.value {
			t.Fatalf("round trip of %d gave %d", c.value, out.Int64Value())
		}
	}
}

func TestPackstreamListAndDictionary(t *testing.T) {
	var list Value
	list.ToList(2)
	list.ListAt(0).ToInt64(1)
	list.ListAt(1).ToString8("two")
	out := roundTrip(t, &list)
	if out.Kind() != List || out.Size() != 2 {
		t.Fatalf("list round trip kind=%s size=%d", out.Kind(), out.Size())
	}
	if out.ListAt(0).Int64Value() != 1 || out.ListAt(1).String8Value() != "two" {
		t.Fatalf("list contents mismatch")
	}

	var dict Value
	dict.ToDictionary8(1)
	dict.DictSetKey(0, "k")
	dict.DictValueAt(0).ToInt64(42)
	out = roundTrip(t, &dict)
	if out.Kind() != Dictionary8 || out.DictKeyAt(0) != "k" || out.DictValueAt(0).Int64Value() != 42 {
		t.Fatalf("dictionary round trip mismatch")
	}
}

func TestPackstreamStructure(t *testing.T) {
	var req Value
	req.ToRequest(TagRUN, 2)
	req.StructFieldAt(0).ToString8("RETURN 1")
	req.StructFieldAt(1).ToDictionary8(0)

	buf := NewBuffer(64)
	if err := Load(buf, &req); err != nil {
		t.Fatalf("Load: %v", err)
	}
	var out Value
	if err := Unload(buf, &out); err != nil {
		t.Fatalf("Unload: %v", err)
	}
	// Unload cannot know client-bound vs server-bound in advance; it
	// decodes every structure generically.
	if out.Kind() != Structure || out.Subtype() != TagRUN {
		t.Fatalf("structure round trip kind=%s subtype=0x%02x", out.Kind(), out.Subtype())
	}
	if out.StructFieldAt(0).String8Value() != "RETURN 1" {
		t.Fatalf("structure field 0 mismatch")
	}
}

func TestPackstreamNotPackable(t *testing.T) {
	var v Value
	v.ToNum32(7)
	buf := NewBuffer(16)
	if err := Load(buf, &v); err != ErrNotPackable {
		t.Fatalf("Load(Num32) err = %v, want ErrNotPackable", err)
	}
}

func TestPackstreamInvalidMarker(t *testing.T) {
	buf := NewBuffer(1)
	buf.WriteByte(0xC7) // unassigned marker
	var out Value
	err := Unload(buf, &out)
	berr, ok := err.(*Error)
	if !ok || berr.Kind != ProtocolViolation {
		t.Fatalf("Unload invalid marker err = %v, want ProtocolViolation", err)
	}
}

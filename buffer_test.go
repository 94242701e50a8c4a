package bolt

import "testing"

func TestBufferWriteRead(t *testing.T) {
	b := NewBuffer(4)
	n, err := b.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if b.Len() != 5 {
		t.Fatalf("Len = %d, want 5", b.Len())
	}
	out := make([]byte, 5)
	n, err = b.Read(out)
	if err != nil || n != 5 || string(out) != "hello" {
		t.Fatalf("Read = %q, %d, %v", out, n, err)
	}
	if b.Len() != 0 {
		t.Fatalf("Len after full read = %d, want 0", b.Len())
	}
}

func TestBufferByteOps(t *testing.T) {
	b := NewBuffer(1)
	for _, c := range []byte("abc") {
		if err := b.WriteByte(c); err != nil {
			t.Fatalf("WriteByte: %v", err)
		}
	}
	for _, want := range []byte("abc") {
		got, err := b.ReadByte()
		if err != nil || got != want {
			t.Fatalf("ReadByte = %q, %v, want %q", got, err, want)
		}
	}
	if _, err := b.ReadByte(); err != ErrBufferEmpty {
		t.Fatalf("ReadByte on empty = %v, want ErrBufferEmpty", err)
	}
}

func TestBufferPeekNext(t *testing.T) {
	b := NewBuffer(8)
	b.Write([]byte("abcdef"))
	if got := string(b.Peek(3)); got != "abc" {
		t.Fatalf("Peek(3) = %q, want abc", got)
	}
	if b.Len() != 6 {
		t.Fatalf("Peek must not consume, Len = %d, want 6", b.Len())
	}
	if got := string(b.Next(3)); got != "abc" {
		t.Fatalf("Next(3) = %q, want abc", got)
	}
	if b.Len() != 3 {
		t.Fatalf("Len after Next = %d, want 3", b.Len())
	}
}

func TestBufferCompactAndGrow(t *testing.T) {
	b := NewBuffer(4)
	b.Write([]byte("ab"))
	b.Next(2) // consume, cursor == extent == 2
	b.Write([]byte("cdefgh"))
	if b.Len() != 6 {
		t.Fatalf("Len = %d, want 6", b.Len())
	}
	if got := string(b.Next(6)); got != "cdefgh" {
		t.Fatalf("Next(6) = %q, want cdefgh", got)
	}
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer(4)
	b.Write([]byte("xyz"))
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len after Reset = %d, want 0", b.Len())
	}
	b.Write([]byte("ab"))
	if got := string(b.Peek(2)); got != "ab" {
		t.Fatalf("Peek after reuse = %q, want ab", got)
	}
}

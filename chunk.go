package bolt

import "io"

// DefaultMaxChunk is the default chunk ceiling; the wire format allows up
// to 65535 bytes per chunk but a smaller default keeps any single chunk
// write bounded.
const DefaultMaxChunk = 8192

// MaxWireChunk is the hard ceiling imposed by the 16-bit length prefix.
const MaxWireChunk = 65535

// WriteChunked splits payload into chunks of at most maxChunk bytes and
// writes each as `uint16 BE length` + payload to w, followed by a
// zero-length terminator chunk marking the message boundary.
func WriteChunked(w io.Writer, payload []byte, maxChunk int) error {
	if maxChunk <= 0 || maxChunk > MaxWireChunk {
		maxChunk = DefaultMaxChunk
	}
	for len(payload) > 0 {
		n := len(payload)
		if n > maxChunk {
			n = maxChunk
		}
		if err := writeChunk(w, payload[:n]); err != nil {
			return err
		}
		payload = payload[n:]
	}
	return writeChunk(w, nil)
}

func writeChunk(w io.Writer, chunk []byte) error {
	header := beUint16(uint16(len(chunk)))
	if _, err := w.Write(header); err != nil {
		return err
	}
	if len(chunk) == 0 {
		return nil
	}
	_, err := w.Write(chunk)
	return err
}

// ReadChunked reads chunks from r until the zero-length terminator,
// appending each chunk's payload to dst and returning the concatenation.
// If r is exhausted before a terminator arrives, the read error is
// returned classified, so a stream that simply ends yields an *Error of
// kind EndOfTransmission.
func ReadChunked(r io.Reader, dst []byte) ([]byte, error) {
	header := make([]byte, 2)
	for {
		if _, err := io.ReadFull(r, header); err != nil {
			return dst, wrapIOError(err)
		}
		length := beGetUint16(header)
		if length == 0 {
			return dst, nil
		}
		chunk := make([]byte, length)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return dst, wrapIOError(err)
		}
		dst = append(dst, chunk...)
	}
}

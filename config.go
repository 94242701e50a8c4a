package bolt

import (
	"time"

	"github.com/c2h5oh/datasize"
)

// Transport selects whether Connection wraps its socket in TLS.
type Transport int

const (
	Plaintext Transport = iota
	TLSTransport
)

// Config gathers connection-open knobs in one populated struct rather than
// scattering constants across call sites.
type Config struct {
	Transport    Transport
	MaxChunkSize datasize.ByteSize
	DialTimeout  time.Duration
	UserAgent    string
}

// DefaultConfig returns sane defaults: plaintext transport, an 8KB chunk
// ceiling, and a 10s dial timeout.
func DefaultConfig() Config {
	return Config{
		Transport:    Plaintext,
		MaxChunkSize: 8 * datasize.KB,
		DialTimeout:  10 * time.Second,
		UserAgent:    "seabolt-go/1.0",
	}
}

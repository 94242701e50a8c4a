package bolt

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// Kind classifies a failure the way the connection state machine needs to
// see it: OS-neutral, so the same switch works whether the underlying
// platform error came from a socket, a TLS handshake, or the PackStream
// grammar.
type Kind int

const (
	NoError Kind = iota
	PermissionDenied
	Unsupported
	OutOfFiles
	OutOfMemory
	OutOfPorts
	ConnectionRefused
	Interrupted
	NetworkUnreachable
	TimedOut
	TLSError
	EndOfTransmission
	UnresolvedAddress
	ProtocolViolation
	UnknownError
)

func (k Kind) String() string {
	switch k {
	case NoError:
		return "no_error"
	case PermissionDenied:
		return "permission_denied"
	case Unsupported:
		return "unsupported"
	case OutOfFiles:
		return "out_of_files"
	case OutOfMemory:
		return "out_of_memory"
	case OutOfPorts:
		return "out_of_ports"
	case ConnectionRefused:
		return "connection_refused"
	case Interrupted:
		return "interrupted"
	case NetworkUnreachable:
		return "network_unreachable"
	case TimedOut:
		return "timed_out"
	case TLSError:
		return "tls_error"
	case EndOfTransmission:
		return "end_of_transmission"
	case UnresolvedAddress:
		return "unresolved_address"
	case ProtocolViolation:
		return "protocol_violation"
	default:
		return "unknown_error"
	}
}

// Error pairs a taxonomy Kind with the underlying cause, so a DEFUNCT
// transition carries both a coarse status and the specific error that
// caused it.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError wraps cause with an explicit Kind, used when the caller already
// knows the classification (a grammar violation, an unresolved address).
func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

var (
	ErrUnsupportedVersion = NewError(Unsupported, errors.New("server does not support a requested protocol version"))
	ErrEmptyAddressList   = NewError(UnresolvedAddress, errors.New("address resolution returned no candidates"))
	ErrTruncatedChunk     = NewError(ProtocolViolation, errors.New("message payload ended in the middle of a value"))
	ErrUnknownSummary     = NewError(ProtocolViolation, errors.New("unknown summary structure tag"))
	ErrNotPackable        = NewError(ProtocolViolation, errors.New("value kind has no PackStream encoding"))
)

// classify maps a raw transport/TLS error to a taxonomy Kind, the Go
// equivalent of connect.c's errno switch inside _set_status.
func classify(err error) Kind {
	if err == nil {
		return NoError
	}
	var berr *Error
	if errors.As(err, &berr) {
		return berr.Kind
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			return PermissionDenied
		case syscall.EMFILE, syscall.ENFILE:
			return OutOfFiles
		case syscall.ENOBUFS, syscall.ENOMEM:
			return OutOfMemory
		case syscall.EAGAIN:
			return OutOfPorts
		case syscall.ECONNREFUSED:
			return ConnectionRefused
		case syscall.EINTR:
			return Interrupted
		case syscall.ENETUNREACH:
			return NetworkUnreachable
		case syscall.ETIMEDOUT:
			return TimedOut
		case syscall.EAFNOSUPPORT, syscall.EPROTONOSUPPORT:
			return Unsupported
		default:
			return UnknownError
		}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return EndOfTransmission
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TimedOut
	}

	return UnknownError
}

// wrapIOError classifies err and, if it is non-nil, wraps it into an *Error
// ready to be attached to a Connection's status.
func wrapIOError(err error) *Error {
	if err == nil {
		return nil
	}
	return NewError(classify(err), err)
}

package bolt

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"strconv"

	uuid "github.com/satori/go.uuid"
)

// Status is the connection's coarse lifecycle state.
type Status int

const (
	Disconnected Status = iota
	Connected
	Ready
	Failed
	Defunct
)

func (s Status) String() string {
	switch s {
	case Disconnected:
		return "DISCONNECTED"
	case Connected:
		return "CONNECTED"
	case Ready:
		return "READY"
	case Failed:
		return "FAILED"
	case Defunct:
		return "DEFUNCT"
	default:
		return "UNKNOWN"
	}
}

var handshakePreamble = [4]byte{0x60, 0x60, 0xB0, 0x17}

// Connection orchestrates socket (optionally TLS) open, handshake,
// transmit/receive, and carries the protocol-version-specific state block.
// It is not safe for concurrent use; each Connection belongs to one task
// at a time.
type Connection struct {
	id      string
	config  Config
	address *Address

	conn            net.Conn
	protocolVersion uint32

	txBuffer *Buffer

	status Status
	err    *Error

	state *protocolV1State

	log     Logger
	metrics *Metrics
}

// Open resolves address, dials the first resolved IP that accepts a
// connection, optionally wraps the socket in TLS, and performs the
// protocol handshake.
func Open(cfg Config, address *Address) (*Connection, error) {
	connUUID, err := uuid.NewV4()
	if err != nil {
		connUUID = uuid.Nil
	}
	id := connUUID.String()[:8]
	c := &Connection{
		id:      id,
		config:  cfg,
		address: address,
		status:  Disconnected,
		log:     NewLogger(id),
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	ips, err := address.Resolve(ctx)
	if err != nil {
		c.fail(wrapIOError(err))
		return c, err
	}

	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	var lastErr error
	for _, ip := range ips {
		conn, derr := dialer.Dial("tcp", net.JoinHostPort(ip.String(), strconv.Itoa(address.Port)))
		if derr == nil {
			c.conn = conn
			break
		}
		lastErr = derr
	}
	if c.conn == nil {
		berr := wrapIOError(lastErr)
		c.fail(berr)
		return c, berr
	}
	c.status = Connected
	c.log.info("connected to %s", address)

	if cfg.Transport == TLSTransport {
		tlsConn := tls.Client(c.conn, &tls.Config{MinVersion: tls.VersionTLS12, ServerName: address.Host})
		if err := tlsConn.Handshake(); err != nil {
			berr := NewError(TLSError, err)
			c.fail(berr)
			c.conn.Close()
			return c, berr
		}
		c.conn = tlsConn
	}

	if err := c.handshake(); err != nil {
		c.fail(err.(*Error))
		c.conn.Close()
		return c, err
	}

	c.txBuffer = NewBuffer(int(cfg.MaxChunkSize))
	c.state = newProtocolV1State()
	c.log.info("handshake complete, protocol version %d", c.protocolVersion)
	return c, nil
}

// handshake sends the Bolt preamble and four candidate versions (only
// version 1 is offered by this core) and reads back the server's
// selection.
func (c *Connection) handshake() error {
	c.log.info("performing handshake")
	req := make([]byte, 20)
	copy(req[0:4], handshakePreamble[:])
	copy(req[4:8], beUint32(1))
	if _, err := c.conn.Write(req); err != nil {
		return wrapIOError(err)
	}
	resp := make([]byte, 4)
	if _, err := io.ReadFull(c.conn, resp); err != nil {
		return wrapIOError(err)
	}
	version := beGetUint32(resp)
	if version == 0 {
		return NewError(Unsupported, errors.New("server selected no supported protocol version"))
	}
	c.protocolVersion = version
	return nil
}

func (c *Connection) fail(err *Error) {
	c.status = Defunct
	c.err = err
	c.metrics.setStatus(c.status)
	c.log.error("%s", err)
}

// Status returns the connection's current lifecycle state.
func (c *Connection) Status() Status { return c.status }

// Err returns the error that drove the connection to DEFUNCT, if any. A
// FAILED status sets no error here; the server's FAILURE summary is
// available through Fetched.
func (c *Connection) Err() *Error { return c.err }

// SetMetrics attaches a Metrics collector; pass nil to disable
// instrumentation.
func (c *Connection) SetMetrics(m *Metrics) { c.metrics = m }

// Close releases the connection's socket/TLS session and protocol state;
// every Connection created with Open should be paired with a Close.
func (c *Connection) Close() error {
	if c.status == Disconnected {
		return nil
	}
	c.status = Disconnected
	c.metrics.setStatus(c.status)
	if c.state != nil {
		c.state.destroy()
		c.state = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}

// LoadMessage runs the codec over v (a REQUEST value) and appends its
// chunked bytes to the connection's TX buffer, assigning and returning the
// request id that will pair with its eventual summary.
func (c *Connection) LoadMessage(v *Value) (requestID int, err error) {
	if c.status == Defunct {
		return -1, c.err
	}
	c.state.txPayload.Reset()
	if loadErr := Load(c.state.txPayload, v); loadErr != nil {
		berr := NewError(ProtocolViolation, loadErr)
		c.fail(berr)
		return -1, berr
	}
	payload := append([]byte(nil), c.state.txPayload.Peek(c.state.txPayload.Len())...)
	if err := WriteChunked(c.txBuffer, payload, int(c.config.MaxChunkSize)); err != nil {
		berr := wrapIOError(err)
		c.fail(berr)
		return -1, berr
	}
	requestID = c.state.nextRequestID
	c.state.nextRequestID++
	c.metrics.incRequests()
	return requestID, nil
}

// Send flushes the TX buffer to the socket.
func (c *Connection) Send() error {
	if c.status == Defunct {
		return c.err
	}
	n := c.txBuffer.Len()
	if n == 0 {
		return nil
	}
	buf := c.txBuffer.Next(n)
	if _, err := c.conn.Write(buf); err != nil {
		berr := wrapIOError(err)
		c.fail(berr)
		return berr
	}
	c.txBuffer.Reset()
	c.metrics.addSent(n)
	return nil
}

// Fetch reads exactly one message and decodes it into Fetched(). It
// returns 1 if a record was decoded (more to come for this request), 0 if
// a summary was decoded (request complete), or -1 on error.
func (c *Connection) Fetch(requestID int) (int, error) {
	if c.status == Defunct {
		return -1, c.err
	}
	payload, err := ReadChunked(c.conn, c.state.rxPayload[:0])
	if err != nil {
		berr, ok := err.(*Error)
		if !ok {
			berr = wrapIOError(err)
		}
		c.fail(berr)
		return -1, berr
	}
	c.state.rxPayload = payload
	c.metrics.addReceived(len(payload))

	buf := &Buffer{data: payload, extent: len(payload)}
	var decoded Value
	if err := Unload(buf, &decoded); err != nil {
		berr, ok := err.(*Error)
		if !ok {
			berr = NewError(ProtocolViolation, err)
		}
		c.fail(berr)
		return -1, berr
	}

	switch decoded.Subtype() {
	case TagRECORD:
		c.state.fetched.destroy()
		c.state.fetched = decoded.children[0]
		decoded.children[0] = Value{}
		return 1, nil
	case TagSUCCESS, TagIGNORED, TagFAILURE:
		decoded.kind = Summary
		c.state.fetched.destroy()
		c.state.fetched = decoded
		c.state.responseCounter++
		switch decoded.Subtype() {
		case TagSUCCESS:
			c.status = Ready
		case TagFAILURE:
			if c.status == Connected {
				// FAILURE on the still-unauthenticated connection is fatal:
				// there is no session to recover, unlike a FAILURE received
				// once READY, which only fails the in-flight request.
				c.err = NewError(PermissionDenied, errors.New("server reported FAILURE during INIT"))
				c.status = Defunct
			} else {
				c.status = Failed
			}
		case TagIGNORED:
			// request skipped due to a preceding failure; no state change
		}
		c.metrics.setStatus(c.status)
		return 0, nil
	default:
		c.fail(ErrUnknownSummary)
		return -1, ErrUnknownSummary
	}
}

// FetchSummary repeats Fetch(requestID) until a summary is decoded.
func (c *Connection) FetchSummary(requestID int) (int, error) {
	for {
		n, err := c.Fetch(requestID)
		if err != nil || n == 0 {
			return n, err
		}
	}
}

// Fetched returns the scratch value most recently decoded by Fetch.
func (c *Connection) Fetched() *Value { return &c.state.fetched }

// ResponseCounter returns the count of summaries fetched so far, used to
// pair against the next assigned request id.
func (c *Connection) ResponseCounter() int { return c.state.responseCounter }

// reset acknowledges a FAILED connection back to READY by sending RESET
// and waiting for its SUCCESS. Kept unexported: no caller outside this
// package needs it yet, and exposing it prematurely would commit to a
// public recovery API before one is needed.
func (c *Connection) reset() error {
	if c.status != Failed {
		return nil
	}
	id, err := c.LoadMessage(&c.state.resetRequest)
	if err != nil {
		return err
	}
	if err := c.Send(); err != nil {
		return err
	}
	if _, err := c.FetchSummary(id); err != nil {
		return err
	}
	if c.Fetched().Subtype() == TagSUCCESS {
		c.status = Ready
	}
	return nil
}

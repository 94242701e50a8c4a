package bolt

// protocolV1State carries the mutable state specific to Bolt protocol
// version 1: the request-id/response-counter pair and a set of prebuilt
// REQUEST templates reused across calls instead of allocating a fresh
// Value per request.
type protocolV1State struct {
	txPayload *Buffer // pre-chunk message payload, reset and reused per LoadMessage call
	rxPayload []byte  // dechunked message payload, reused across Fetch calls

	nextRequestID   int
	responseCounter int

	initRequest       Value
	ackFailureRequest Value
	resetRequest      Value
	runRequest        Value
	beginRequest      Value
	commitRequest     Value
	rollbackRequest   Value
	discardRequest    Value
	pullRequest       Value

	fetched Value // scratch slot for the most recently decoded record/summary
}

func newProtocolV1State() *protocolV1State {
	s := &protocolV1State{txPayload: NewBuffer(1024)}

	s.initRequest.ToRequest(TagINIT, 2)
	s.ackFailureRequest.ToRequest(TagACKFailure, 0)
	s.resetRequest.ToRequest(TagRESET, 0)

	s.runRequest.ToRequest(TagRUN, 2)
	s.discardRequest.ToRequest(TagDiscardAll, 0)
	s.pullRequest.ToRequest(TagPullAll, 0)

	s.beginRequest.ToRequest(TagRUN, 2)
	s.beginRequest.StructFieldAt(0).ToString8("BEGIN")
	s.beginRequest.StructFieldAt(1).ToDictionary8(0)

	s.commitRequest.ToRequest(TagRUN, 2)
	s.commitRequest.StructFieldAt(0).ToString8("COMMIT")
	s.commitRequest.StructFieldAt(1).ToDictionary8(0)

	s.rollbackRequest.ToRequest(TagRUN, 2)
	s.rollbackRequest.StructFieldAt(0).ToString8("ROLLBACK")
	s.rollbackRequest.StructFieldAt(1).ToDictionary8(0)

	return s
}

func (s *protocolV1State) destroy() {
	s.initRequest.destroy()
	s.ackFailureRequest.destroy()
	s.resetRequest.destroy()
	s.runRequest.destroy()
	s.beginRequest.destroy()
	s.commitRequest.destroy()
	s.rollbackRequest.destroy()
	s.discardRequest.destroy()
	s.pullRequest.destroy()
	s.fetched.destroy()
}

// Init populates and loads the INIT request: a user agent string and a
// "basic" auth token dictionary (scheme/principal/credentials). Send and
// FetchSummary still need to be called by the caller, matching the rest
// of the Load*Request family.
func (c *Connection) Init(userAgent, user, password string) (requestID int, err error) {
	req := &c.state.initRequest
	req.StructFieldAt(0).ToString8(userAgent)
	auth := req.StructFieldAt(1)
	auth.ToDictionary8(3)
	auth.DictSetKey(0, "scheme")
	auth.DictValueAt(0).ToString8("basic")
	auth.DictSetKey(1, "principal")
	auth.DictValueAt(1).ToString8(user)
	auth.DictSetKey(2, "credentials")
	auth.DictValueAt(2).ToString8(password)
	return c.LoadMessage(req)
}

// SetStatement stores the Cypher text for the next LoadRunRequest call.
func (c *Connection) SetStatement(statement string) {
	c.state.runRequest.StructFieldAt(0).ToString8(statement)
}

// SetParameterCount resizes the parameter dictionary for the next
// LoadRunRequest call.
func (c *Connection) SetParameterCount(n int32) {
	c.state.runRequest.StructFieldAt(1).ToDictionary8(n)
}

// SetParameterKey names parameter slot i.
func (c *Connection) SetParameterKey(i int32, key string) {
	c.state.runRequest.StructFieldAt(1).DictSetKey(i, key)
}

// ParameterValueSlot returns parameter slot i for the caller to populate.
func (c *Connection) ParameterValueSlot(i int32) *Value {
	return c.state.runRequest.StructFieldAt(1).DictValueAt(i)
}

// LoadRunRequest loads the RUN request built via SetStatement /
// SetParameterCount / SetParameterKey / ParameterValueSlot.
func (c *Connection) LoadRunRequest() (requestID int, err error) {
	return c.LoadMessage(&c.state.runRequest)
}

// LoadBeginRequest / LoadCommitRequest / LoadRollbackRequest load the
// fixed BEGIN/COMMIT/ROLLBACK statements as RUN with no parameters;
// protocol v1 has no dedicated BEGIN/COMMIT/ROLLBACK message types.
func (c *Connection) LoadBeginRequest() (requestID int, err error) {
	return c.LoadMessage(&c.state.beginRequest)
}

func (c *Connection) LoadCommitRequest() (requestID int, err error) {
	return c.LoadMessage(&c.state.commitRequest)
}

func (c *Connection) LoadRollbackRequest() (requestID int, err error) {
	return c.LoadMessage(&c.state.rollbackRequest)
}

// LoadDiscardRequest loads a DISCARD_ALL request. n is accepted only as a
// negative sentinel ("discard all remaining records"); protocol v1 has no
// wire representation for a bounded discard count.
func (c *Connection) LoadDiscardRequest(n int32) (requestID int, err error) {
	if n >= 0 {
		return -1, NewError(ProtocolViolation, errBoundedStreamCount{})
	}
	return c.LoadMessage(&c.state.discardRequest)
}

// LoadPullRequest loads a PULL_ALL request, subject to the same negative-n
// convention as LoadDiscardRequest.
func (c *Connection) LoadPullRequest(n int32) (requestID int, err error) {
	if n >= 0 {
		return -1, NewError(ProtocolViolation, errBoundedStreamCount{})
	}
	return c.LoadMessage(&c.state.pullRequest)
}

// LoadAckFailureRequest loads an ACK_FAILURE request, acknowledging a
// FAILURE summary so the connection can return to READY without a full
// RESET.
func (c *Connection) LoadAckFailureRequest() (requestID int, err error) {
	return c.LoadMessage(&c.state.ackFailureRequest)
}

type errBoundedStreamCount struct{}

func (errBoundedStreamCount) Error() string {
	return "protocol v1 supports only unbounded DISCARD_ALL/PULL_ALL"
}

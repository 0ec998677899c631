package gateway

import "errors"

var (
	// ErrSlowConsumer indicates the outbound queue of a connection overflowed.
	ErrSlowConsumer = errors.New("gateway.slow_consumer")

	// ErrConnClosed indicates an emit on a connection that is already closed.
	ErrConnClosed = errors.New("gateway.connection_closed")

	// ErrEncode indicates an outbound payload could not be encoded.
	ErrEncode = errors.New("gateway.encode_failed")
)

package socks5

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidClientState is returned when OnChannelActive fires more
	// than once on the same client handler.
	ErrInvalidClientState = errors.New("socks5: invalid client state")
	// ErrInvalidServerState is the failure given to a write promise that
	// arrives before the server handshake is Active, and the error returned
	// when OnChannelActive fires more than once on the same server handler.
	ErrInvalidServerState = errors.New("socks5: invalid server state")
	// ErrNoValidAuthenticationMethod is returned when no method in common
	// can be negotiated, or a delegate rejects the selected method.
	ErrNoValidAuthenticationMethod = errors.New("socks5: no acceptable authentication method")
	// ErrUnexpectedRead is returned when inbound bytes arrive in a state
	// that has no defined transition for them.
	ErrUnexpectedRead = errors.New("socks5: unexpected read for current state")
)

// InvalidProtocolVersionError is returned when a message's version field
// is not 5.
type InvalidProtocolVersionError struct{ Version byte }

func (e *InvalidProtocolVersionError) Error() string {
	return fmt.Sprintf("socks5: invalid protocol version %d", e.Version)
}

// InvalidReservedByteError is returned when a reserved field is not 0.
type InvalidReservedByteError struct{ Value byte }

func (e *InvalidReservedByteError) Error() string {
	return fmt.Sprintf("socks5: invalid reserved byte %#x", e.Value)
}

// InvalidAddressTypeError is returned when an address type tag is none of
// IPv4/domain/IPv6.
type InvalidAddressTypeError struct{ Type byte }

func (e *InvalidAddressTypeError) Error() string {
	return fmt.Sprintf("socks5: invalid address type %d", e.Type)
}

// InvalidAuthenticationSelectionError is returned when the server selects
// a method the client never offered.
type InvalidAuthenticationSelectionError struct{ Method AuthMethod }

func (e *InvalidAuthenticationSelectionError) Error() string {
	return fmt.Sprintf("socks5: server selected unoffered method %#x", byte(e.Method))
}

// ConnectionFailedError is returned when a ServerResponse carries a reply
// code other than Succeeded.
type ConnectionFailedError struct{ Reply ReplyCode }

func (e *ConnectionFailedError) Error() string {
	return fmt.Sprintf("socks5: connection failed, reply %d", e.Reply)
}

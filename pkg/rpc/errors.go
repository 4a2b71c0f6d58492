package rpc

import (
	"errors"
	"fmt"
)

// Decode error taxonomy (spec §7). These are all fatal to the channel when
// they surface from the framing/call-decode path; NFS-level failures are
// never represented as Go errors (spec §4.G, §7).
var (
	ErrIllegalTooShort  = errors.New("rpc: message shorter than xid+type")
	ErrUnknownMsgType   = errors.New("rpc: unknown message type")
	ErrUnknownXID       = errors.New("rpc: reply for unknown xid")
	ErrUnknownVerifier  = errors.New("rpc: unsupported or malformed auth verifier")
	ErrIllegalReplyStat = errors.New("rpc: illegal reply status")
)

// UnknownRPCVersionError reports a CALL whose rpc_version field was not 2.
type UnknownRPCVersionError struct{ Version uint32 }

func (e *UnknownRPCVersionError) Error() string {
	return fmt.Sprintf("rpc: unknown rpc version %d", e.Version)
}

// UnknownVerifierError reports an auth flavor this module does not
// support, or a non-empty verifier body (spec §3.2: "verifiers must be
// empty").
type UnknownVerifierError struct{ Flavor uint32 }

func (e *UnknownVerifierError) Error() string {
	return fmt.Sprintf("rpc: unsupported auth flavor %d", e.Flavor)
}

func (e *UnknownVerifierError) Unwrap() error { return ErrUnknownVerifier }

// UnknownXIDError reports a REPLY whose xid has no pending call registered
// (spec §3.2 invariant ii).
type UnknownXIDError struct{ XID uint32 }

func (e *UnknownXIDError) Error() string {
	return fmt.Sprintf("rpc: reply for unknown xid 0x%x", e.XID)
}

func (e *UnknownXIDError) Unwrap() error { return ErrUnknownXID }

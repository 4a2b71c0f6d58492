package rpc

import (
	"fmt"

	"github.com/marmos91/netproto/pkg/xdr"
)

func decodeOpaqueAuth(c *xdr.Cursor) (OpaqueAuth, error) {
	flavor, err := xdr.ReadUint32(c)
	if err != nil {
		return OpaqueAuth{}, err
	}
	body, err := xdr.ReadBlobMax(c, maxOpaqueAuthBody)
	if err != nil {
		return OpaqueAuth{}, err
	}
	cp := make([]byte, len(body))
	copy(cp, body)
	return OpaqueAuth{Flavor: flavor, Body: cp}, nil
}

func encodeOpaqueAuth(buf []byte, a OpaqueAuth) []byte {
	buf = xdr.AppendUint32(buf, a.Flavor)
	return xdr.AppendBlob(buf, a.Body)
}

// validateVerifier enforces spec §3.2: only AUTH_NONE/AUTH_SYS flavors are
// recognized, and verifiers (as opposed to credentials) must carry no
// opaque body.
func validateVerifier(v OpaqueAuth) error {
	if v.Flavor != AuthNone && v.Flavor != AuthSys {
		return &UnknownVerifierError{Flavor: v.Flavor}
	}
	if len(v.Body) != 0 {
		return fmt.Errorf("%w: non-empty verifier body (%d bytes)", ErrUnknownVerifier, len(v.Body))
	}
	return nil
}

// DecodeCall parses a complete CALL message (xid, msg_type, call body,
// credentials, verifier) from payload, leaving any remaining bytes as the
// still-undecoded procedure arguments in CallMessage.Args.
//
// Per spec §4.E rule 1, a call whose rpc_version is not 2 is rejected with
// UnknownRPCVersionError; this (like every other error here) is a fatal,
// channel-closing condition, not a "need more data" signal.
func DecodeCall(payload []byte) (*CallMessage, error) {
	if len(payload) < MinFragmentPayload {
		return nil, ErrIllegalTooShort
	}
	c := xdr.NewCursor(payload)

	xid, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	msgType, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	if msgType != MsgCall {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMsgType, msgType)
	}

	rpcVersion, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	if rpcVersion != RPCVersion {
		return nil, &UnknownRPCVersionError{Version: rpcVersion}
	}

	program, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	progVersion, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	procedure, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}

	creds, err := decodeOpaqueAuth(c)
	if err != nil {
		return nil, err
	}
	verf, err := decodeOpaqueAuth(c)
	if err != nil {
		return nil, err
	}
	if err := validateVerifier(verf); err != nil {
		return nil, err
	}

	return &CallMessage{
		XID: xid,
		Call: CallBody{
			RPCVersion:     rpcVersion,
			Program:        program,
			ProgramVersion: progVersion,
			Procedure:      procedure,
			Credentials:    creds,
			Verifier:       verf,
		},
		Args: append([]byte(nil), c.Bytes()...),
	}, nil
}

// EncodeCall builds a complete CALL message payload (without record
// marking) for the given xid, call header, and already-encoded procedure
// arguments. Used by RPC clients such as portmap.Client.
func EncodeCall(xid uint32, call CallBody, args []byte) []byte {
	buf := xdr.AppendUint32(nil, xid)
	buf = xdr.AppendUint32(buf, MsgCall)
	buf = xdr.AppendUint32(buf, RPCVersion)
	buf = xdr.AppendUint32(buf, call.Program)
	buf = xdr.AppendUint32(buf, call.ProgramVersion)
	buf = xdr.AppendUint32(buf, call.Procedure)
	buf = encodeOpaqueAuth(buf, call.Credentials)
	buf = encodeOpaqueAuth(buf, call.Verifier)
	buf = append(buf, args...)
	return buf
}

// DecodeReply parses a complete REPLY message. pending resolves the xid
// against the calls the caller registered when it sent them; an unknown xid
// is a hard decode error per spec §3.2 invariant (ii). Callers that don't
// track pending calls (e.g. tests decoding a reply in isolation) can pass
// nil, which skips the xid check.
func DecodeReply(payload []byte, pending *PendingCalls) (*ReplyMessage, error) {
	if len(payload) < MinFragmentPayload {
		return nil, ErrIllegalTooShort
	}
	c := xdr.NewCursor(payload)

	xid, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		if _, ok := pending.Resolve(xid); !ok {
			return nil, &UnknownXIDError{XID: xid}
		}
	}

	msgType, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	if msgType != MsgReply {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMsgType, msgType)
	}

	replyStat, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}

	switch replyStat {
	case ReplyAccepted:
		verf, err := decodeOpaqueAuth(c)
		if err != nil {
			return nil, err
		}
		status, err := xdr.ReadUint32(c)
		if err != nil {
			return nil, err
		}
		ar := &AcceptedReply{Verifier: verf, Status: status}
		switch status {
		case AcceptSuccess:
			ar.Results = append([]byte(nil), c.Bytes()...)
		case AcceptProgMismatch:
			low, err := xdr.ReadUint32(c)
			if err != nil {
				return nil, err
			}
			high, err := xdr.ReadUint32(c)
			if err != nil {
				return nil, err
			}
			ar.Low, ar.High = low, high
		case AcceptProgUnavail, AcceptProcUnavail, AcceptGarbageArgs, AcceptSystemErr:
			// no further fields
		default:
			return nil, fmt.Errorf("%w: accept_stat %d", ErrIllegalReplyStat, status)
		}
		return &ReplyMessage{XID: xid, Accepted: ar}, nil

	case ReplyDenied:
		status, err := xdr.ReadUint32(c)
		if err != nil {
			return nil, err
		}
		dr := &DeniedReply{Status: status}
		switch status {
		case DeniedRPCMismatch:
			low, err := xdr.ReadUint32(c)
			if err != nil {
				return nil, err
			}
			high, err := xdr.ReadUint32(c)
			if err != nil {
				return nil, err
			}
			dr.Low, dr.High = low, high
		case DeniedAuthError:
			authStat, err := xdr.ReadUint32(c)
			if err != nil {
				return nil, err
			}
			dr.AuthStat = authStat
		default:
			return nil, fmt.Errorf("%w: reject_stat %d", ErrIllegalReplyStat, status)
		}
		return &ReplyMessage{XID: xid, Denied: dr}, nil

	default:
		return nil, fmt.Errorf("%w: reply_stat %d", ErrIllegalReplyStat, replyStat)
	}
}

// nullVerifier is the AUTH_NONE verifier every reply in this module uses:
// replies never authenticate themselves back to the client.
var nullVerifier = OpaqueAuth{Flavor: AuthNone}

// EncodeAcceptedSuccess builds a full accepted/success reply payload with
// the given already-encoded procedure results.
func EncodeAcceptedSuccess(xid uint32, results []byte) []byte {
	buf := xdr.AppendUint32(nil, xid)
	buf = xdr.AppendUint32(buf, MsgReply)
	buf = xdr.AppendUint32(buf, ReplyAccepted)
	buf = encodeOpaqueAuth(buf, nullVerifier)
	buf = xdr.AppendUint32(buf, AcceptSuccess)
	buf = append(buf, results...)
	return buf
}

// EncodeAcceptedFailure builds an accepted reply carrying a non-success
// accept_stat (PROG_UNAVAIL, PROC_UNAVAIL, GARBAGE_ARGS, SYSTEM_ERR — none
// of which carry extra fields).
func EncodeAcceptedFailure(xid uint32, status uint32) []byte {
	buf := xdr.AppendUint32(nil, xid)
	buf = xdr.AppendUint32(buf, MsgReply)
	buf = xdr.AppendUint32(buf, ReplyAccepted)
	buf = encodeOpaqueAuth(buf, nullVerifier)
	buf = xdr.AppendUint32(buf, status)
	return buf
}

// EncodeProgMismatch builds an accepted/PROG_MISMATCH reply with the
// server's supported [low, high] version range.
func EncodeProgMismatch(xid uint32, low, high uint32) []byte {
	buf := xdr.AppendUint32(nil, xid)
	buf = xdr.AppendUint32(buf, MsgReply)
	buf = xdr.AppendUint32(buf, ReplyAccepted)
	buf = encodeOpaqueAuth(buf, nullVerifier)
	buf = xdr.AppendUint32(buf, AcceptProgMismatch)
	buf = xdr.AppendUint32(buf, low)
	buf = xdr.AppendUint32(buf, high)
	return buf
}

// EncodeRPCMismatch builds a denied/RPC_MISMATCH reply.
func EncodeRPCMismatch(xid uint32, low, high uint32) []byte {
	buf := xdr.AppendUint32(nil, xid)
	buf = xdr.AppendUint32(buf, MsgReply)
	buf = xdr.AppendUint32(buf, ReplyDenied)
	buf = xdr.AppendUint32(buf, DeniedRPCMismatch)
	buf = xdr.AppendUint32(buf, low)
	buf = xdr.AppendUint32(buf, high)
	return buf
}

// EncodeAuthError builds a denied/AUTH_ERROR reply.
func EncodeAuthError(xid uint32, authStat uint32) []byte {
	buf := xdr.AppendUint32(nil, xid)
	buf = xdr.AppendUint32(buf, MsgReply)
	buf = xdr.AppendUint32(buf, ReplyDenied)
	buf = xdr.AppendUint32(buf, DeniedAuthError)
	buf = xdr.AppendUint32(buf, authStat)
	return buf
}

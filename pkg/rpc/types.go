package rpc

// Message types (spec §3.2).
const (
	MsgCall  uint32 = 0
	MsgReply uint32 = 1
)

// RPCVersion is the only ONC-RPC version this module speaks (RFC 5531).
const RPCVersion uint32 = 2

// Authentication flavors. Only AUTH_NONE and AUTH_SYS are supported,
// matching the teacher's auth package and spec §3.2.
const (
	AuthNone uint32 = 0
	AuthSys  uint32 = 1
)

// Reply discriminator (accepted vs denied).
const (
	ReplyAccepted uint32 = 0
	ReplyDenied   uint32 = 1
)

// Accept status codes.
const (
	AcceptSuccess      uint32 = 0
	AcceptProgUnavail  uint32 = 1
	AcceptProgMismatch uint32 = 2
	AcceptProcUnavail  uint32 = 3
	AcceptGarbageArgs  uint32 = 4
	AcceptSystemErr    uint32 = 5
)

// Reject status codes for a denied reply.
const (
	DeniedRPCMismatch uint32 = 0
	DeniedAuthError   uint32 = 1
)

// Auth_stat values for a denied AUTH_ERROR reply (RFC 5531 §8.2). This
// module only distinguishes the handful a conforming server can produce.
const (
	AuthStatBadCred      uint32 = 1
	AuthStatRejectedCred uint32 = 2
	AuthStatBadVerf      uint32 = 3
	AuthStatRejectedVerf uint32 = 4
	AuthStatTooWeak      uint32 = 5
)

// maxOpaqueAuthBody bounds the AUTH_SYS credential body length. RFC 5531
// caps opaque auth data at 400 bytes; this module enforces the same limit
// to reject obviously-malicious fragments before they're fully decoded.
const maxOpaqueAuthBody = 400

// OpaqueAuth is the generic {flavor, variable-length opaque} credential or
// verifier carried on every CALL and REPLY (spec §3.2).
type OpaqueAuth struct {
	Flavor uint32
	Body   []byte
}

// CallBody is the fixed header of a CALL message, not including the
// procedure-specific arguments that follow it on the wire.
type CallBody struct {
	RPCVersion     uint32
	Program        uint32
	ProgramVersion uint32
	Procedure      uint32
	Credentials    OpaqueAuth
	Verifier       OpaqueAuth
}

// CallMessage is a fully decoded CALL: the envelope plus the still-encoded
// procedure body, which only the program-specific codec (nfs3, mount,
// portmap) knows how to interpret.
type CallMessage struct {
	XID  uint32
	Call CallBody
	Args []byte
}

// AcceptedReply is the body of a reply whose top-level discriminator was
// "accepted". Low/High are only meaningful when Status == AcceptProgMismatch.
type AcceptedReply struct {
	Verifier OpaqueAuth
	Status   uint32
	Low      uint32
	High     uint32
	// Results holds the still-encoded procedure-specific reply body; only
	// populated when Status == AcceptSuccess.
	Results []byte
}

// DeniedReply is the body of a reply whose top-level discriminator was
// "denied". Low/High are meaningful only for DeniedRPCMismatch; AuthStat
// only for DeniedAuthError.
type DeniedReply struct {
	Status   uint32
	Low      uint32
	High     uint32
	AuthStat uint32
}

// ReplyMessage is a fully decoded REPLY: exactly one of Accepted or Denied
// is non-nil.
type ReplyMessage struct {
	XID      uint32
	Accepted *AcceptedReply
	Denied   *DeniedReply
}

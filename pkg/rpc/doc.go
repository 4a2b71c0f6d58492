// Package rpc implements the ONC-RPC (RFC 5531) wire format used by NFSv3,
// MOUNT, and portmap: the 4-byte record-marking fragment header, the
// CALL/REPLY message envelope, OpaqueAuth credentials/verifiers, and the
// accepted/denied reply status taxonomy. It does not know about any
// particular program (NFS, MOUNT, portmap) — those live in sibling
// packages and decode the call/reply body themselves using pkg/xdr.
package rpc

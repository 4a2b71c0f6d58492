// Package xdr implements the RFC 4506 External Data Representation
// primitives this module's wire codecs are built from: fixed-width
// big-endian integers, 4-byte-aligned length-prefixed opaque blobs and
// strings, optional (discriminated) values, and the has-next/terminator
// list encoding NFS3 READDIR(PLUS) and portmap DUMP both use.
//
// Every read operates on a Cursor over an in-memory byte slice rather than
// an io.Reader. This is deliberate: the byte-pipeline's framing layer
// (pkg/pipeline) only ever hands a decoder a complete message once the RPC
// record-marking layer (pkg/rpc) has reassembled one, so nothing in this
// package blocks on I/O. What it must do instead is unwind cleanly when a
// caller probes it with a short or malformed slice — ParseUnwinding is the
// mechanical equivalent of the "decode(buf) -> Option<Message>, cursor
// restored on None" contract.
package xdr

// Package nfs3 implements the NFSv3 (RFC 1813) wire types and per-procedure
// codec: one Call/Reply struct pair and one encode/decode function pair per
// supported procedure. Every reply follows the same shape — a u32 status
// followed by an OK arm or a (usually much smaller) fail arm — per RFC 1813
// and the shared convention documented on Status.
package nfs3

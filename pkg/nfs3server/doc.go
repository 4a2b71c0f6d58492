// Package nfs3server implements the per-connection decode→dispatch→encode
// loop for the NFS3 and MOUNT ONC-RPC programs (RFC 1813), fanning calls
// out to a pluggable Filesystem backend.
package nfs3server

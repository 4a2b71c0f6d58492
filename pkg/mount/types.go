// Package mount implements the MOUNT protocol (RFC 1813 Appendix I)
// message types and codec, restricted to the procedures an NFSv3 client
// actually exercises: NULL, MNT, and UMNT.
package mount

// Program is the MOUNT ONC-RPC program number, version 3.
const (
	Program        uint32 = 100005
	ProgramVersion uint32 = 3
)

// Supported procedures (RFC 1813 Appendix I). EXPORT and DUMP are not
// implemented; dispatch must answer them with PROC_UNAVAIL.
const (
	ProcNull    uint32 = 0
	ProcMount   uint32 = 1
	ProcUnmount uint32 = 3
)

// Status is the mountstat3 result code carried by MNT replies.
type Status uint32

const (
	StatusOK             Status = 0
	StatusErrPerm        Status = 1
	StatusErrNoEnt       Status = 2
	StatusErrIO          Status = 5
	StatusErrAccess      Status = 13
	StatusErrNotDir      Status = 20
	StatusErrInval       Status = 22
	StatusErrNameTooLong Status = 63
	StatusErrNotSupp     Status = 10004
	StatusErrServerFault Status = 10006
)

// Package portmap implements the portmap/rpcbind v2 program (RFC 1833
// §4): the standard ONC-RPC companion that maps (program, version,
// protocol) triples to a listening port.
package portmap

// Program is the portmap ONC-RPC program number, version 2. It is always
// reachable at the well-known port 111 over both TCP and UDP.
const (
	Program        uint32 = 100000
	ProgramVersion uint32 = 2
)

// Supported procedures. CALLIT(5) is out of scope: it is rarely
// implemented and not exercised by NFS/MOUNT clients, and forwarding
// arbitrary RPC calls through the portmapper is a well-known amplification
// vector.
const (
	ProcNull    uint32 = 0
	ProcSet     uint32 = 1
	ProcUnset   uint32 = 2
	ProcGetPort uint32 = 3
	ProcDump    uint32 = 4
)

// IP protocol numbers as carried in a Mapping (RFC 1833 §4).
const (
	ProtocolTCP uint32 = 6
	ProtocolUDP uint32 = 17
)

// Mapping is the pmap2.mapping structure: a registration of one program's
// version on one transport protocol to a port.
type Mapping struct {
	Program  uint32
	Version  uint32
	Protocol uint32
	Port     uint32
}

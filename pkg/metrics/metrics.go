// Package metrics declares the observability surface every protocol in
// this module can report through. Every operation is optional: pass nil
// wherever a Metrics is accepted to disable collection with zero
// overhead, the same convention the Prometheus implementation under
// pkg/metrics/prometheus follows for each of its methods.
package metrics

import "time"

// Metrics is the umbrella sink for RPC/NFS3/MOUNT, portmap, and SOCKSv5
// observability. Implementations must treat every method as optional: a
// nil Metrics value is always valid to pass around, and a concrete
// implementation's methods must no-op on a nil receiver too, so callers
// never need a non-nil check of their own.
type Metrics interface {
	// RecordRPCCall records one dispatched RPC call: its program name
	// ("nfs3", "mount", "portmap"), procedure name, how long dispatch took
	// from decode to reply, and the accept_stat it produced.
	RecordRPCCall(program, procedure string, duration time.Duration, acceptStat uint32)

	// RecordNFSStatus records the NFS3Status carried by a successful RPC
	// reply to an NFS3 procedure (a non-zero status is a filesystem-level
	// failure, not an RPC failure).
	RecordNFSStatus(procedure string, status uint32)

	// RecordBytesTransferred records payload bytes moved by a READ
	// (direction "read") once encoded onto the wire.
	RecordBytesTransferred(procedure string, direction string, bytes uint64)

	// SetActiveChannels updates the current connection-channel count.
	SetActiveChannels(count int32)
	// RecordChannelOpened increments the accepted-channel counter.
	RecordChannelOpened()
	// RecordChannelClosed increments the closed-channel counter.
	RecordChannelClosed()

	// RecordPortmapLookup records a GETPORT request outcome.
	RecordPortmapLookup(program uint32, hit bool)

	// RecordSocksHandshake records one SOCKSv5 handshake attempt by role
	// ("client" or "server"), its total duration, and whether it reached
	// Active.
	RecordSocksHandshake(role string, duration time.Duration, succeeded bool)
}

// Noop is a Metrics that discards everything. Handlers default their
// Metrics field to Noop{} rather than leaving it a nil interface, so call
// sites never need their own nil check.
type Noop struct{}

func (Noop) RecordRPCCall(string, string, time.Duration, uint32) {}
func (Noop) RecordNFSStatus(string, uint32)                      {}
func (Noop) RecordBytesTransferred(string, string, uint64)       {}
func (Noop) SetActiveChannels(int32)                             {}
func (Noop) RecordChannelOpened()                                {}
func (Noop) RecordChannelClosed()                                {}
func (Noop) RecordPortmapLookup(uint32, bool)                    {}
func (Noop) RecordSocksHandshake(string, time.Duration, bool)    {}

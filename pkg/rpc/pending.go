package rpc

import "sync"

// PendingCalls tracks xid -> procedure for calls a client has sent but not
// yet received a reply for (spec §3.2 invariant ii/iii). It is the
// client-side counterpart of the server's dispatch table: a reply can only
// be decoded once its xid is known to be outstanding.
//
// DuplicateTolerant controls what happens when a reply's xid is resolved
// more than once before a fresh call reuses it (spec Open Question #1).
// The default, false, rejects the second resolve as an unknown xid —
// a server is not expected to answer a single call twice, and tolerating
// it silently would let a spoofed or replayed reply correlate with a
// request it doesn't belong to.
type PendingCalls struct {
	mu                sync.Mutex
	pending           map[uint32]uint32
	DuplicateTolerant bool
}

// NewPendingCalls returns an empty registry.
func NewPendingCalls() *PendingCalls {
	return &PendingCalls{pending: make(map[uint32]uint32)}
}

// Register records that xid was just sent for the given procedure.
func (p *PendingCalls) Register(xid, procedure uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending[xid] = procedure
}

// Resolve reports the procedure a reply's xid was registered for, and
// removes it from the pending set unless DuplicateTolerant is set.
func (p *PendingCalls) Resolve(xid uint32) (procedure uint32, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	procedure, ok = p.pending[xid]
	if ok && !p.DuplicateTolerant {
		delete(p.pending, xid)
	}
	return procedure, ok
}

// Forget discards a pending call without a reply, used when a channel
// closes while calls are still outstanding (spec §4.A promise-failure
// semantics).
func (p *PendingCalls) Forget(xid uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, xid)
}

// Outstanding returns the xids still awaiting a reply.
func (p *PendingCalls) Outstanding() []uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	xids := make([]uint32, 0, len(p.pending))
	for xid := range p.pending {
		xids = append(xids, xid)
	}
	return xids
}

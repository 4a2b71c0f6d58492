package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPendingCallsResolveRemovesByDefault(t *testing.T) {
	p := NewPendingCalls()
	p.Register(1, 5)

	proc, ok := p.Resolve(1)
	assert.True(t, ok)
	assert.Equal(t, uint32(5), proc)

	_, ok = p.Resolve(1)
	assert.False(t, ok, "a second resolve of the same xid should fail once not duplicate-tolerant")
}

func TestPendingCallsDuplicateTolerant(t *testing.T) {
	p := NewPendingCalls()
	p.DuplicateTolerant = true
	p.Register(1, 5)

	_, ok := p.Resolve(1)
	assert.True(t, ok)
	_, ok = p.Resolve(1)
	assert.True(t, ok, "duplicate-tolerant registry should resolve the same xid repeatedly")
}

func TestPendingCallsForget(t *testing.T) {
	p := NewPendingCalls()
	p.Register(1, 5)
	p.Forget(1)
	_, ok := p.Resolve(1)
	assert.False(t, ok)
}

func TestPendingCallsOutstanding(t *testing.T) {
	p := NewPendingCalls()
	p.Register(1, 5)
	p.Register(2, 6)
	assert.ElementsMatch(t, []uint32{1, 2}, p.Outstanding())
}

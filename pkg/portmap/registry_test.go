package portmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrySetGetUnset(t *testing.T) {
	r := NewRegistry()

	port, ok := r.GetPort(100003, 3, ProtocolTCP)
	assert.False(t, ok)
	assert.Zero(t, port)

	assert.True(t, r.Set(Mapping{Program: 100003, Version: 3, Protocol: ProtocolTCP, Port: 2049}))

	port, ok = r.GetPort(100003, 3, ProtocolTCP)
	assert.True(t, ok)
	assert.Equal(t, uint32(2049), port)

	assert.True(t, r.Unset(100003, 3, ProtocolTCP))
	_, ok = r.GetPort(100003, 3, ProtocolTCP)
	assert.False(t, ok)

	assert.False(t, r.Unset(100003, 3, ProtocolTCP))
}

func TestRegistrySetOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Set(Mapping{Program: 100003, Version: 3, Protocol: ProtocolTCP, Port: 2049})
	r.Set(Mapping{Program: 100003, Version: 3, Protocol: ProtocolTCP, Port: 3049})

	port, ok := r.GetPort(100003, 3, ProtocolTCP)
	assert.True(t, ok)
	assert.Equal(t, uint32(3049), port)
}

func TestRegistryDump(t *testing.T) {
	r := NewRegistry()
	r.Set(Mapping{Program: 100003, Version: 3, Protocol: ProtocolTCP, Port: 2049})
	r.Set(Mapping{Program: 100005, Version: 3, Protocol: ProtocolUDP, Port: 635})

	dump := r.Dump()
	assert.Len(t, dump, 2)
	assert.Contains(t, dump, Mapping{Program: 100003, Version: 3, Protocol: ProtocolTCP, Port: 2049})
	assert.Contains(t, dump, Mapping{Program: 100005, Version: 3, Protocol: ProtocolUDP, Port: 635})
}

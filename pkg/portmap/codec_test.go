package portmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingRoundTrip(t *testing.T) {
	m := Mapping{Program: nfsProgramForTest, Version: 3, Protocol: ProtocolTCP, Port: 2049}
	wire := EncodeMapping(m)
	got, err := DecodeMapping(wire)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestBoolReplyRoundTrip(t *testing.T) {
	got, err := DecodeBoolReply(EncodeBoolReply(true))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = DecodeBoolReply(EncodeBoolReply(false))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestPortReplyRoundTrip(t *testing.T) {
	got, err := DecodePortReply(EncodePortReply(2049))
	require.NoError(t, err)
	assert.Equal(t, uint32(2049), got)
}

func TestDumpReplyRoundTrip(t *testing.T) {
	mappings := []Mapping{
		{Program: nfsProgramForTest, Version: 3, Protocol: ProtocolTCP, Port: 2049},
		{Program: Program, Version: ProgramVersion, Protocol: ProtocolUDP, Port: 111},
	}
	got, err := DecodeDumpReply(EncodeDumpReply(mappings))
	require.NoError(t, err)
	assert.Equal(t, mappings, got)
}

func TestDumpReplyEmptyListIsJustTerminator(t *testing.T) {
	wire := EncodeDumpReply(nil)
	assert.Equal(t, []byte{0, 0, 0, 0}, wire)
	got, err := DecodeDumpReply(wire)
	require.NoError(t, err)
	assert.Empty(t, got)
}

const nfsProgramForTest uint32 = 100003

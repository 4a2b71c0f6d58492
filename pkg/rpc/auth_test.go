package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixAuthRoundTrip(t *testing.T) {
	want := UnixAuth{
		Stamp:       1234,
		MachineName: "client.example.com",
		UID:         1000,
		GID:         1000,
		GIDs:        []uint32{1000, 27, 100},
	}
	body, err := EncodeUnixAuth(want)
	require.NoError(t, err)

	got, err := ParseUnixAuth(body)
	require.NoError(t, err)
	assert.Equal(t, want.Stamp, got.Stamp)
	assert.Equal(t, want.MachineName, got.MachineName)
	assert.Equal(t, want.UID, got.UID)
	assert.Equal(t, want.GID, got.GID)
	assert.Equal(t, want.GIDs, got.GIDs)
}

func TestUnixAuthRejectsTooManyGIDs(t *testing.T) {
	gids := make([]uint32, maxAuxGIDs+1)
	_, err := EncodeUnixAuth(UnixAuth{GIDs: gids})
	assert.ErrorIs(t, err, ErrTooManyGIDs)
}

func TestParseUnixAuthRejectsTooManyGIDsOnWire(t *testing.T) {
	// Hand-build a body claiming 17 gids without actually providing encode
	// support for it, mirroring a hostile or buggy peer.
	good, err := EncodeUnixAuth(UnixAuth{GIDs: make([]uint32, maxAuxGIDs)})
	require.NoError(t, err)

	// Patch the gid count field (last 4-byte group-count word before the
	// gid array) from 16 to 17.
	countOffset := len(good) - maxAuxGIDs*4 - 4
	good[countOffset+3] = maxAuxGIDs + 1

	_, err = ParseUnixAuth(good)
	assert.ErrorIs(t, err, ErrTooManyGIDs)
}

package mount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullRoundTrip(t *testing.T) {
	assert.Empty(t, EncodeNullCall(NullCall{}))
	assert.Empty(t, EncodeNullReply(NullReply{}))
}

func TestMountRoundTrip(t *testing.T) {
	call := MountCall{DirPath: "/export/home"}
	wire := EncodeMountCall(call)
	got, err := DecodeMountCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)

	reply := MountReply{
		Status:      StatusOK,
		Handle:      []byte("root-handle"),
		AuthFlavors: []int32{1},
	}
	rwire := EncodeMountReply(reply)
	gotReply, err := DecodeMountReply(rwire)
	require.NoError(t, err)
	assert.Equal(t, reply, gotReply)
}

func TestMountReplyFailureArmOmitsHandle(t *testing.T) {
	reply := MountReply{Status: StatusErrNoEnt}
	wire := EncodeMountReply(reply)
	got, err := DecodeMountReply(wire)
	require.NoError(t, err)
	assert.Equal(t, StatusErrNoEnt, got.Status)
	assert.Nil(t, got.Handle)
	assert.Nil(t, got.AuthFlavors)
}

func TestUnmountRoundTrip(t *testing.T) {
	call := UnmountCall{DirPath: "/export/home"}
	wire := EncodeUnmountCall(call)
	got, err := DecodeUnmountCall(wire)
	require.NoError(t, err)
	assert.Equal(t, call, got)
	assert.Empty(t, EncodeUnmountReply(UnmountReply{}))
}

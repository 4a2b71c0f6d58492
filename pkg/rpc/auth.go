package rpc

import (
	"errors"
	"fmt"

	"github.com/marmos91/netproto/pkg/xdr"
)

// maxAuxGIDs bounds the auxiliary group list in an AUTH_SYS credential.
// Grounded on the teacher's rpc_test.go, which rejects a 17th gid with
// "too many gids".
const maxAuxGIDs = 16

var ErrTooManyGIDs = errors.New("rpc: too many gids")

// UnixAuth is the decoded body of an AUTH_SYS credential (RFC 5531 §8.2).
type UnixAuth struct {
	Stamp       uint32
	MachineName string
	UID         uint32
	GID         uint32
	GIDs        []uint32
}

// ParseUnixAuth decodes an AUTH_SYS credential body, as carried in
// CallBody.Credentials.Body when Credentials.Flavor == AuthSys.
func ParseUnixAuth(body []byte) (*UnixAuth, error) {
	c := xdr.NewCursor(body)

	stamp, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	machineName, err := xdr.ReadString(c)
	if err != nil {
		return nil, err
	}
	uid, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	gid, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	count, err := xdr.ReadUint32(c)
	if err != nil {
		return nil, err
	}
	if count > maxAuxGIDs {
		return nil, fmt.Errorf("%w: %d", ErrTooManyGIDs, count)
	}
	gids := make([]uint32, count)
	for i := range gids {
		g, err := xdr.ReadUint32(c)
		if err != nil {
			return nil, err
		}
		gids[i] = g
	}

	return &UnixAuth{
		Stamp:       stamp,
		MachineName: machineName,
		UID:         uid,
		GID:         gid,
		GIDs:        gids,
	}, nil
}

// EncodeUnixAuth builds the opaque body of an AUTH_SYS credential, for
// clients (e.g. the portmap client) that authenticate their calls.
func EncodeUnixAuth(a UnixAuth) ([]byte, error) {
	if len(a.GIDs) > maxAuxGIDs {
		return nil, fmt.Errorf("%w: %d", ErrTooManyGIDs, len(a.GIDs))
	}
	buf := xdr.AppendUint32(nil, a.Stamp)
	buf = xdr.AppendString(buf, a.MachineName)
	buf = xdr.AppendUint32(buf, a.UID)
	buf = xdr.AppendUint32(buf, a.GID)
	buf = xdr.AppendUint32(buf, uint32(len(a.GIDs)))
	for _, g := range a.GIDs {
		buf = xdr.AppendUint32(buf, g)
	}
	return buf, nil
}

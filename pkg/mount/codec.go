package mount

import "github.com/marmos91/netproto/pkg/xdr"

const maxFileHandleLen = 64

// NullCall and NullReply carry no data.
type NullCall struct{}
type NullReply struct{}

func DecodeNullCall([]byte) (NullCall, error)   { return NullCall{}, nil }
func EncodeNullCall(NullCall) []byte            { return nil }
func DecodeNullReply([]byte) (NullReply, error) { return NullReply{}, nil }
func EncodeNullReply(NullReply) []byte          { return nil }

// MountCall is the MNT3args: the dirpath the client wants to mount.
type MountCall struct {
	DirPath string
}

// MountReply is the fhstatus3. Handle and AuthFlavors are only present
// when Status == StatusOK.
type MountReply struct {
	Status      Status
	Handle      []byte
	AuthFlavors []int32
}

func DecodeMountCall(args []byte) (MountCall, error) {
	c := xdr.NewCursor(args)
	path, err := xdr.ReadString(c)
	if err != nil {
		return MountCall{}, err
	}
	return MountCall{DirPath: path}, nil
}

func EncodeMountCall(call MountCall) []byte {
	return xdr.AppendString(nil, call.DirPath)
}

func DecodeMountReply(body []byte) (MountReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return MountReply{}, err
	}
	r := MountReply{Status: Status(status)}
	if r.Status != StatusOK {
		return r, nil
	}
	if r.Handle, err = xdr.ReadBlobMax(c, maxFileHandleLen); err != nil {
		return r, err
	}
	n, err := xdr.ReadUint32(c)
	if err != nil {
		return r, err
	}
	r.AuthFlavors = make([]int32, n)
	for i := range r.AuthFlavors {
		if r.AuthFlavors[i], err = xdr.ReadInt32(c); err != nil {
			return r, err
		}
	}
	return r, nil
}

func EncodeMountReply(reply MountReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	if reply.Status != StatusOK {
		return buf
	}
	buf = xdr.AppendBlob(buf, reply.Handle)
	buf = xdr.AppendUint32(buf, uint32(len(reply.AuthFlavors)))
	for _, flavor := range reply.AuthFlavors {
		buf = xdr.AppendUint32(buf, uint32(flavor))
	}
	return buf
}

// UnmountCall is the UMNT3args: the dirpath to remove from the mount
// table. UMNT carries no reply body beyond the RPC envelope.
type UnmountCall struct {
	DirPath string
}

type UnmountReply struct{}

func DecodeUnmountCall(args []byte) (UnmountCall, error) {
	c := xdr.NewCursor(args)
	path, err := xdr.ReadString(c)
	if err != nil {
		return UnmountCall{}, err
	}
	return UnmountCall{DirPath: path}, nil
}

func EncodeUnmountCall(call UnmountCall) []byte {
	return xdr.AppendString(nil, call.DirPath)
}

func DecodeUnmountReply([]byte) (UnmountReply, error) { return UnmountReply{}, nil }
func EncodeUnmountReply(UnmountReply) []byte          { return nil }

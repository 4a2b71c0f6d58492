package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// ACCESS permission bits (RFC 1813 §3.3.4).
const (
	AccessRead    uint32 = 0x0001
	AccessLookup  uint32 = 0x0002
	AccessModify  uint32 = 0x0004
	AccessExtend  uint32 = 0x0008
	AccessDelete  uint32 = 0x0010
	AccessExecute uint32 = 0x0020
)

// AccessCall is the ACCESS3args.
type AccessCall struct {
	Handle FileHandle
	Access uint32
}

// AccessReply is the ACCESS3res. Attr is present in both arms; Access only
// on success.
type AccessReply struct {
	Status Status
	Attr   *FileAttr
	Access uint32
}

func DecodeAccessCall(args []byte) (AccessCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return AccessCall{}, err
	}
	access, err := xdr.ReadUint32(c)
	if err != nil {
		return AccessCall{}, err
	}
	return AccessCall{Handle: h, Access: access}, nil
}

func EncodeAccessCall(call AccessCall) []byte {
	buf := encodeFileHandle(nil, call.Handle)
	return xdr.AppendUint32(buf, call.Access)
}

func DecodeAccessReply(body []byte) (AccessReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return AccessReply{}, err
	}
	r := AccessReply{Status: Status(status)}
	if r.Attr, err = decodePostOpAttr(c); err != nil {
		return r, err
	}
	if r.Status == StatusOK {
		r.Access, err = xdr.ReadUint32(c)
	}
	return r, err
}

func EncodeAccessReply(reply AccessReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	buf = encodePostOpAttr(buf, reply.Attr)
	if reply.Status == StatusOK {
		buf = xdr.AppendUint32(buf, reply.Access)
	}
	return buf
}

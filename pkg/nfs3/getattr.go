package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// GetAttrCall is the GETATTR3args (RFC 1813 §3.3.1).
type GetAttrCall struct {
	Handle FileHandle
}

// GetAttrReply is the GETATTR3res. The OK arm is just the object's
// attributes; there is no fail arm beyond the status itself.
type GetAttrReply struct {
	Status Status
	Attr   FileAttr
}

func DecodeGetAttrCall(args []byte) (GetAttrCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return GetAttrCall{}, err
	}
	return GetAttrCall{Handle: h}, nil
}

func EncodeGetAttrCall(call GetAttrCall) []byte {
	return encodeFileHandle(nil, call.Handle)
}

func DecodeGetAttrReply(body []byte) (GetAttrReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return GetAttrReply{}, err
	}
	r := GetAttrReply{Status: Status(status)}
	if r.Status != StatusOK {
		return r, nil
	}
	r.Attr, err = decodeFileAttr(c)
	return r, err
}

func EncodeGetAttrReply(reply GetAttrReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	if reply.Status != StatusOK {
		return buf
	}
	return encodeFileAttr(buf, reply.Attr)
}

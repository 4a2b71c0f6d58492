package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// ReadlinkCall is the READLINK3args (RFC 1813 §3.3.5).
type ReadlinkCall struct {
	Handle FileHandle
}

// ReadlinkReply is the READLINK3res. Attr is present in both arms; Path
// only on success.
type ReadlinkReply struct {
	Status Status
	Attr   *FileAttr
	Path   string
}

func DecodeReadlinkCall(args []byte) (ReadlinkCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return ReadlinkCall{}, err
	}
	return ReadlinkCall{Handle: h}, nil
}

func EncodeReadlinkCall(call ReadlinkCall) []byte {
	return encodeFileHandle(nil, call.Handle)
}

func DecodeReadlinkReply(body []byte) (ReadlinkReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return ReadlinkReply{}, err
	}
	r := ReadlinkReply{Status: Status(status)}
	if r.Attr, err = decodePostOpAttr(c); err != nil {
		return r, err
	}
	if r.Status == StatusOK {
		r.Path, err = xdr.ReadString(c)
	}
	return r, err
}

func EncodeReadlinkReply(reply ReadlinkReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	buf = encodePostOpAttr(buf, reply.Attr)
	if reply.Status == StatusOK {
		buf = xdr.AppendString(buf, reply.Path)
	}
	return buf
}

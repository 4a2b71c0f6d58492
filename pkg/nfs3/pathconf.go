package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// PathconfCall is the PATHCONF3args (RFC 1813 §3.3.20).
type PathconfCall struct {
	Handle FileHandle
}

// PathconfReply is the PATHCONF3res. Attr is present in both arms; the
// remaining fields only on success.
type PathconfReply struct {
	Status          Status
	Attr            *FileAttr
	LinkMax         uint32
	NameMax         uint32
	NoTrunc         bool
	ChownRestricted bool
	CaseInsensitive bool
	CasePreserving  bool
}

func DecodePathconfCall(args []byte) (PathconfCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return PathconfCall{}, err
	}
	return PathconfCall{Handle: h}, nil
}

func EncodePathconfCall(call PathconfCall) []byte {
	return encodeFileHandle(nil, call.Handle)
}

func decodeBool(c *xdr.Cursor) (bool, error) {
	v, err := xdr.ReadUint32(c)
	return v != 0, err
}

func encodeBool(buf []byte, b bool) []byte {
	v := uint32(0)
	if b {
		v = 1
	}
	return xdr.AppendUint32(buf, v)
}

func DecodePathconfReply(body []byte) (PathconfReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return PathconfReply{}, err
	}
	r := PathconfReply{Status: Status(status)}
	if r.Attr, err = decodePostOpAttr(c); err != nil {
		return r, err
	}
	if r.Status != StatusOK {
		return r, nil
	}
	if r.LinkMax, err = xdr.ReadUint32(c); err != nil {
		return r, err
	}
	if r.NameMax, err = xdr.ReadUint32(c); err != nil {
		return r, err
	}
	if r.NoTrunc, err = decodeBool(c); err != nil {
		return r, err
	}
	if r.ChownRestricted, err = decodeBool(c); err != nil {
		return r, err
	}
	if r.CaseInsensitive, err = decodeBool(c); err != nil {
		return r, err
	}
	r.CasePreserving, err = decodeBool(c)
	return r, err
}

func EncodePathconfReply(reply PathconfReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	buf = encodePostOpAttr(buf, reply.Attr)
	if reply.Status != StatusOK {
		return buf
	}
	buf = xdr.AppendUint32(buf, reply.LinkMax)
	buf = xdr.AppendUint32(buf, reply.NameMax)
	buf = encodeBool(buf, reply.NoTrunc)
	buf = encodeBool(buf, reply.ChownRestricted)
	buf = encodeBool(buf, reply.CaseInsensitive)
	return encodeBool(buf, reply.CasePreserving)
}

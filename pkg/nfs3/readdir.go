package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// ReaddirCall is the READDIR3args (RFC 1813 §3.3.16).
type ReaddirCall struct {
	Handle     FileHandle
	Cookie     uint64
	CookieVerf uint64
	Count      uint32
}

// DirEntry is one entry3 in a READDIR reply.
type DirEntry struct {
	FileID uint64
	Name   string
	Cookie uint64
}

// ReaddirReply is the READDIR3res. Attr is present in both arms; the
// remaining fields only on success.
type ReaddirReply struct {
	Status     Status
	Attr       *FileAttr
	CookieVerf uint64
	Entries    []DirEntry
	EOF        bool
}

func DecodeReaddirCall(args []byte) (ReaddirCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return ReaddirCall{}, err
	}
	cookie, err := xdr.ReadUint64(c)
	if err != nil {
		return ReaddirCall{}, err
	}
	verf, err := xdr.ReadUint64(c)
	if err != nil {
		return ReaddirCall{}, err
	}
	count, err := xdr.ReadUint32(c)
	if err != nil {
		return ReaddirCall{}, err
	}
	return ReaddirCall{Handle: h, Cookie: cookie, CookieVerf: verf, Count: count}, nil
}

func EncodeReaddirCall(call ReaddirCall) []byte {
	buf := encodeFileHandle(nil, call.Handle)
	buf = xdr.AppendUint64(buf, call.Cookie)
	buf = xdr.AppendUint64(buf, call.CookieVerf)
	return xdr.AppendUint32(buf, call.Count)
}

func decodeDirEntry(c *xdr.Cursor) (DirEntry, error) {
	var e DirEntry
	var err error
	if e.FileID, err = xdr.ReadUint64(c); err != nil {
		return e, err
	}
	if e.Name, err = xdr.ReadString(c); err != nil {
		return e, err
	}
	e.Cookie, err = xdr.ReadUint64(c)
	return e, err
}

func encodeDirEntry(buf []byte, e DirEntry) []byte {
	buf = xdr.AppendUint64(buf, e.FileID)
	buf = xdr.AppendString(buf, e.Name)
	return xdr.AppendUint64(buf, e.Cookie)
}

func DecodeReaddirReply(body []byte) (ReaddirReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return ReaddirReply{}, err
	}
	r := ReaddirReply{Status: Status(status)}
	if r.Attr, err = decodePostOpAttr(c); err != nil {
		return r, err
	}
	if r.Status != StatusOK {
		return r, nil
	}
	if r.CookieVerf, err = xdr.ReadUint64(c); err != nil {
		return r, err
	}
	if r.Entries, err = xdr.DecodeList(c, decodeDirEntry); err != nil {
		return r, err
	}
	eof, err := xdr.ReadUint32(c)
	if err != nil {
		return r, err
	}
	r.EOF = eof != 0
	return r, nil
}

func EncodeReaddirReply(reply ReaddirReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	buf = encodePostOpAttr(buf, reply.Attr)
	if reply.Status != StatusOK {
		return buf
	}
	buf = xdr.AppendUint64(buf, reply.CookieVerf)
	buf = xdr.AppendList(buf, reply.Entries, encodeDirEntry)
	eof := uint32(0)
	if reply.EOF {
		eof = 1
	}
	return xdr.AppendUint32(buf, eof)
}

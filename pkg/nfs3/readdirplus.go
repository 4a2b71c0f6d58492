package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// ReaddirPlusCall is the READDIRPLUS3args (RFC 1813 §3.3.17).
type ReaddirPlusCall struct {
	Handle     FileHandle
	Cookie     uint64
	CookieVerf uint64
	DirCount   uint32
	MaxCount   uint32
}

// DirEntryPlus is one entryplus3. Attr and Handle are optional per-entry.
type DirEntryPlus struct {
	FileID uint64
	Name   string
	Cookie uint64
	Attr   *FileAttr
	Handle *FileHandle
}

// ReaddirPlusReply is the READDIRPLUS3res.
type ReaddirPlusReply struct {
	Status     Status
	Attr       *FileAttr
	CookieVerf uint64
	Entries    []DirEntryPlus
	EOF        bool
}

func DecodeReaddirPlusCall(args []byte) (ReaddirPlusCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return ReaddirPlusCall{}, err
	}
	cookie, err := xdr.ReadUint64(c)
	if err != nil {
		return ReaddirPlusCall{}, err
	}
	verf, err := xdr.ReadUint64(c)
	if err != nil {
		return ReaddirPlusCall{}, err
	}
	dirCount, err := xdr.ReadUint32(c)
	if err != nil {
		return ReaddirPlusCall{}, err
	}
	maxCount, err := xdr.ReadUint32(c)
	if err != nil {
		return ReaddirPlusCall{}, err
	}
	return ReaddirPlusCall{
		Handle: h, Cookie: cookie, CookieVerf: verf,
		DirCount: dirCount, MaxCount: maxCount,
	}, nil
}

func EncodeReaddirPlusCall(call ReaddirPlusCall) []byte {
	buf := encodeFileHandle(nil, call.Handle)
	buf = xdr.AppendUint64(buf, call.Cookie)
	buf = xdr.AppendUint64(buf, call.CookieVerf)
	buf = xdr.AppendUint32(buf, call.DirCount)
	return xdr.AppendUint32(buf, call.MaxCount)
}

func decodeDirEntryPlus(c *xdr.Cursor) (DirEntryPlus, error) {
	var e DirEntryPlus
	var err error
	if e.FileID, err = xdr.ReadUint64(c); err != nil {
		return e, err
	}
	if e.Name, err = xdr.ReadString(c); err != nil {
		return e, err
	}
	if e.Cookie, err = xdr.ReadUint64(c); err != nil {
		return e, err
	}
	if e.Attr, err = decodePostOpAttr(c); err != nil {
		return e, err
	}
	handle, err := xdr.ReadOptional(c, decodeFileHandle)
	if err != nil {
		return e, err
	}
	e.Handle = handle
	return e, nil
}

func encodeDirEntryPlus(buf []byte, e DirEntryPlus) []byte {
	buf = xdr.AppendUint64(buf, e.FileID)
	buf = xdr.AppendString(buf, e.Name)
	buf = xdr.AppendUint64(buf, e.Cookie)
	buf = encodePostOpAttr(buf, e.Attr)
	return xdr.AppendOptional(buf, e.Handle, encodeFileHandle)
}

func DecodeReaddirPlusReply(body []byte) (ReaddirPlusReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return ReaddirPlusReply{}, err
	}
	r := ReaddirPlusReply{Status: Status(status)}
	if r.Attr, err = decodePostOpAttr(c); err != nil {
		return r, err
	}
	if r.Status != StatusOK {
		return r, nil
	}
	if r.CookieVerf, err = xdr.ReadUint64(c); err != nil {
		return r, err
	}
	if r.Entries, err = xdr.DecodeList(c, decodeDirEntryPlus); err != nil {
		return r, err
	}
	eof, err := xdr.ReadUint32(c)
	if err != nil {
		return r, err
	}
	r.EOF = eof != 0
	return r, nil
}

func EncodeReaddirPlusReply(reply ReaddirPlusReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	buf = encodePostOpAttr(buf, reply.Attr)
	if reply.Status != StatusOK {
		return buf
	}
	buf = xdr.AppendUint64(buf, reply.CookieVerf)
	buf = xdr.AppendList(buf, reply.Entries, encodeDirEntryPlus)
	eof := uint32(0)
	if reply.EOF {
		eof = 1
	}
	return xdr.AppendUint32(buf, eof)
}

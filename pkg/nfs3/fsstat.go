package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// FsStatCall is the FSSTAT3args (RFC 1813 §3.3.18).
type FsStatCall struct {
	Handle FileHandle
}

// FsStatReply is the FSSTAT3res. Attr is present in both arms; the
// remaining fields only on success.
type FsStatReply struct {
	Status   Status
	Attr     *FileAttr
	TBytes   uint64
	FBytes   uint64
	ABytes   uint64
	TFiles   uint64
	FFiles   uint64
	AFiles   uint64
	InvarSec uint32
}

func DecodeFsStatCall(args []byte) (FsStatCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return FsStatCall{}, err
	}
	return FsStatCall{Handle: h}, nil
}

func EncodeFsStatCall(call FsStatCall) []byte {
	return encodeFileHandle(nil, call.Handle)
}

func DecodeFsStatReply(body []byte) (FsStatReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return FsStatReply{}, err
	}
	r := FsStatReply{Status: Status(status)}
	if r.Attr, err = decodePostOpAttr(c); err != nil {
		return r, err
	}
	if r.Status != StatusOK {
		return r, nil
	}
	for _, dst := range []*uint64{&r.TBytes, &r.FBytes, &r.ABytes, &r.TFiles, &r.FFiles, &r.AFiles} {
		if *dst, err = xdr.ReadUint64(c); err != nil {
			return r, err
		}
	}
	r.InvarSec, err = xdr.ReadUint32(c)
	return r, err
}

func EncodeFsStatReply(reply FsStatReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	buf = encodePostOpAttr(buf, reply.Attr)
	if reply.Status != StatusOK {
		return buf
	}
	for _, v := range []uint64{reply.TBytes, reply.FBytes, reply.ABytes, reply.TFiles, reply.FFiles, reply.AFiles} {
		buf = xdr.AppendUint64(buf, v)
	}
	return xdr.AppendUint32(buf, reply.InvarSec)
}

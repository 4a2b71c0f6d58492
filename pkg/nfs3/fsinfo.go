package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// FSINFO properties bits (RFC 1813 §3.3.19).
const (
	FSFLink        uint32 = 0x0001
	FSFSymlink     uint32 = 0x0002
	FSFHomogeneous uint32 = 0x0008
	FSFCanSetTime  uint32 = 0x0010
)

// FsInfoCall is the FSINFO3args.
type FsInfoCall struct {
	Handle FileHandle
}

// FsInfoReply is the FSINFO3res. Attr is present in both arms; the
// remaining fields only on success.
type FsInfoReply struct {
	Status      Status
	Attr        *FileAttr
	RtMax       uint32
	RtPref      uint32
	RtMult      uint32
	WtMax       uint32
	WtPref      uint32
	WtMult      uint32
	DtPref      uint32
	MaxFileSize uint64
	TimeDelta   TimeVal
	Properties  uint32
}

func DecodeFsInfoCall(args []byte) (FsInfoCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return FsInfoCall{}, err
	}
	return FsInfoCall{Handle: h}, nil
}

func EncodeFsInfoCall(call FsInfoCall) []byte {
	return encodeFileHandle(nil, call.Handle)
}

func DecodeFsInfoReply(body []byte) (FsInfoReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return FsInfoReply{}, err
	}
	r := FsInfoReply{Status: Status(status)}
	if r.Attr, err = decodePostOpAttr(c); err != nil {
		return r, err
	}
	if r.Status != StatusOK {
		return r, nil
	}
	for _, dst := range []*uint32{&r.RtMax, &r.RtPref, &r.RtMult, &r.WtMax, &r.WtPref, &r.WtMult, &r.DtPref} {
		if *dst, err = xdr.ReadUint32(c); err != nil {
			return r, err
		}
	}
	if r.MaxFileSize, err = xdr.ReadUint64(c); err != nil {
		return r, err
	}
	if r.TimeDelta, err = decodeTimeVal(c); err != nil {
		return r, err
	}
	r.Properties, err = xdr.ReadUint32(c)
	return r, err
}

func EncodeFsInfoReply(reply FsInfoReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	buf = encodePostOpAttr(buf, reply.Attr)
	if reply.Status != StatusOK {
		return buf
	}
	for _, v := range []uint32{reply.RtMax, reply.RtPref, reply.RtMult, reply.WtMax, reply.WtPref, reply.WtMult, reply.DtPref} {
		buf = xdr.AppendUint32(buf, v)
	}
	buf = xdr.AppendUint64(buf, reply.MaxFileSize)
	buf = encodeTimeVal(buf, reply.TimeDelta)
	return xdr.AppendUint32(buf, reply.Properties)
}

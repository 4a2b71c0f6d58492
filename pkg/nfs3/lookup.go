package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// LookupCall is the LOOKUP3args (RFC 1813 §3.3.3).
type LookupCall struct {
	Dir  FileHandle
	Name string
}

// LookupReply is the LOOKUP3res. DirAttr is present in both arms; Handle
// and ObjAttr only on success.
type LookupReply struct {
	Status  Status
	Handle  FileHandle
	ObjAttr *FileAttr
	DirAttr *FileAttr
}

func DecodeLookupCall(args []byte) (LookupCall, error) {
	c := xdr.NewCursor(args)
	dir, err := decodeFileHandle(c)
	if err != nil {
		return LookupCall{}, err
	}
	name, err := xdr.ReadString(c)
	if err != nil {
		return LookupCall{}, err
	}
	return LookupCall{Dir: dir, Name: name}, nil
}

func EncodeLookupCall(call LookupCall) []byte {
	buf := encodeFileHandle(nil, call.Dir)
	return xdr.AppendString(buf, call.Name)
}

func DecodeLookupReply(body []byte) (LookupReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return LookupReply{}, err
	}
	r := LookupReply{Status: Status(status)}
	if r.Status == StatusOK {
		if r.Handle, err = decodeFileHandle(c); err != nil {
			return r, err
		}
		if r.ObjAttr, err = decodePostOpAttr(c); err != nil {
			return r, err
		}
	}
	r.DirAttr, err = decodePostOpAttr(c)
	return r, err
}

func EncodeLookupReply(reply LookupReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	if reply.Status == StatusOK {
		buf = encodeFileHandle(buf, reply.Handle)
		buf = encodePostOpAttr(buf, reply.ObjAttr)
	}
	return encodePostOpAttr(buf, reply.DirAttr)
}

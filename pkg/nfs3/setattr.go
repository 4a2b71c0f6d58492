package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// SetAttrCall is the SETATTR3args (RFC 1813 §3.3.2).
type SetAttrCall struct {
	Handle FileHandle
	New    SetAttr
	Guard  TimeGuard
}

// SetAttrReply is the SETATTR3res: both arms carry the same wcc_data, so
// there is a single Reply shape rather than separate OK/fail types.
type SetAttrReply struct {
	Status Status
	WCC    WccData
}

func DecodeSetAttrCall(args []byte) (SetAttrCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return SetAttrCall{}, err
	}
	newAttr, err := decodeSetAttr(c)
	if err != nil {
		return SetAttrCall{}, err
	}
	guard, err := decodeTimeGuard(c)
	if err != nil {
		return SetAttrCall{}, err
	}
	return SetAttrCall{Handle: h, New: newAttr, Guard: guard}, nil
}

func EncodeSetAttrCall(call SetAttrCall) []byte {
	buf := encodeFileHandle(nil, call.Handle)
	buf = encodeSetAttr(buf, call.New)
	return encodeTimeGuard(buf, call.Guard)
}

func DecodeSetAttrReply(body []byte) (SetAttrReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return SetAttrReply{}, err
	}
	wcc, err := decodeWccData(c)
	if err != nil {
		return SetAttrReply{}, err
	}
	return SetAttrReply{Status: Status(status), WCC: wcc}, nil
}

func EncodeSetAttrReply(reply SetAttrReply) []byte {
	buf := xdr.AppendUint32(nil, uint32(reply.Status))
	return encodeWccData(buf, reply.WCC)
}

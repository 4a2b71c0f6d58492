package nfs3

import "github.com/marmos91/netproto/pkg/xdr"

// ReadCall is the READ3args (RFC 1813 §3.3.6).
type ReadCall struct {
	Handle FileHandle
	Offset uint64
	Count  uint32
}

// ReadReply is the READ3res. Attr is present in both arms; Count/EOF/Data
// only on success.
type ReadReply struct {
	Status Status
	Attr   *FileAttr
	Count  uint32
	EOF    bool
	Data   []byte
}

// NextStep tells the caller of EncodeReadReply what to append to the
// output buffer after the header EncodeReadReply already wrote. A zero
// NextStep (HasPayload == false) means there is nothing further to write.
type NextStep struct {
	HasPayload bool
	Payload    []byte
	FillBytes  int
}

func DecodeReadCall(args []byte) (ReadCall, error) {
	c := xdr.NewCursor(args)
	h, err := decodeFileHandle(c)
	if err != nil {
		return ReadCall{}, err
	}
	offset, err := xdr.ReadUint64(c)
	if err != nil {
		return ReadCall{}, err
	}
	count, err := xdr.ReadUint32(c)
	if err != nil {
		return ReadCall{}, err
	}
	return ReadCall{Handle: h, Offset: offset, Count: count}, nil
}

func EncodeReadCall(call ReadCall) []byte {
	buf := encodeFileHandle(nil, call.Handle)
	buf = xdr.AppendUint64(buf, call.Offset)
	return xdr.AppendUint32(buf, call.Count)
}

// DecodeReadReply decodes a complete READ reply, including its (already
// fully buffered) data payload. The zero-copy partial-write protocol only
// applies to encoding; by the time a reply reaches decode it has already
// been fully reassembled by the RPC framing layer.
func DecodeReadReply(body []byte) (ReadReply, error) {
	c := xdr.NewCursor(body)
	status, err := xdr.ReadUint32(c)
	if err != nil {
		return ReadReply{}, err
	}
	r := ReadReply{Status: Status(status)}
	if r.Attr, err = decodePostOpAttr(c); err != nil {
		return r, err
	}
	if r.Status != StatusOK {
		return r, nil
	}
	if r.Count, err = xdr.ReadUint32(c); err != nil {
		return r, err
	}
	eof, err := xdr.ReadUint32(c)
	if err != nil {
		return r, err
	}
	r.EOF = eof != 0
	data, err := xdr.ReadBlob(c)
	if err != nil {
		return r, err
	}
	r.Data = append([]byte(nil), data...)
	return r, nil
}

// EncodeReadReply writes the header (status, attributes, count, eof, and
// the data length prefix) and returns a NextStep describing the payload
// the caller must append — typically a zero-copy view straight from the
// backing store rather than a second copy into header — plus its trailing
// zero fill bytes (spec §4.F).
func EncodeReadReply(reply ReadReply) (header []byte, next NextStep) {
	header = xdr.AppendUint32(nil, uint32(reply.Status))
	header = encodePostOpAttr(header, reply.Attr)
	if reply.Status != StatusOK {
		return header, NextStep{}
	}
	header = xdr.AppendUint32(header, reply.Count)
	eof := uint32(0)
	if reply.EOF {
		eof = 1
	}
	header = xdr.AppendUint32(header, eof)
	header = xdr.AppendUint32(header, uint32(len(reply.Data)))
	return header, NextStep{
		HasPayload: true,
		Payload:    reply.Data,
		FillBytes:  xdr.PadLen(len(reply.Data)),
	}
}

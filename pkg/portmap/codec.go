package portmap

import "github.com/marmos91/netproto/pkg/xdr"

func decodeMapping(c *xdr.Cursor) (Mapping, error) {
	program, err := xdr.ReadUint32(c)
	if err != nil {
		return Mapping{}, err
	}
	version, err := xdr.ReadUint32(c)
	if err != nil {
		return Mapping{}, err
	}
	protocol, err := xdr.ReadUint32(c)
	if err != nil {
		return Mapping{}, err
	}
	port, err := xdr.ReadUint32(c)
	if err != nil {
		return Mapping{}, err
	}
	return Mapping{Program: program, Version: version, Protocol: protocol, Port: port}, nil
}

func encodeMapping(buf []byte, m Mapping) []byte {
	buf = xdr.AppendUint32(buf, m.Program)
	buf = xdr.AppendUint32(buf, m.Version)
	buf = xdr.AppendUint32(buf, m.Protocol)
	buf = xdr.AppendUint32(buf, m.Port)
	return buf
}

// DecodeMapping decodes a pmap2.mapping argument, used by SET, UNSET, and
// GETPORT calls alike (they all share this one argument shape).
func DecodeMapping(body []byte) (Mapping, error) {
	c := xdr.NewCursor(body)
	return decodeMapping(c)
}

// EncodeMapping encodes a pmap2.mapping argument.
func EncodeMapping(m Mapping) []byte {
	return encodeMapping(nil, m)
}

// EncodeBoolReply encodes the SET/UNSET pmap2.bool result.
func EncodeBoolReply(ok bool) []byte {
	var v uint32
	if ok {
		v = 1
	}
	return xdr.AppendUint32(nil, v)
}

// DecodeBoolReply decodes the SET/UNSET pmap2.bool result.
func DecodeBoolReply(body []byte) (bool, error) {
	c := xdr.NewCursor(body)
	v, err := xdr.ReadUint32(c)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// EncodePortReply encodes the GETPORT pmap2.port result; an unmapped
// triple is reported as port 0, not an RPC-level error.
func EncodePortReply(port uint32) []byte {
	return xdr.AppendUint32(nil, port)
}

// DecodePortReply decodes the GETPORT pmap2.port result.
func DecodePortReply(body []byte) (uint32, error) {
	c := xdr.NewCursor(body)
	return xdr.ReadUint32(c)
}

// EncodeDumpReply encodes the DUMP result: the has-next/terminator linked
// list of mappings shared with NFS3 READDIR (pkg/xdr.AppendList).
func EncodeDumpReply(mappings []Mapping) []byte {
	return xdr.AppendList(nil, mappings, encodeMapping)
}

// DecodeDumpReply decodes a DUMP result.
func DecodeDumpReply(body []byte) ([]Mapping, error) {
	c := xdr.NewCursor(body)
	items, err := xdr.DecodeList(c, decodeMapping)
	if err != nil {
		return nil, err
	}
	return items, nil
}

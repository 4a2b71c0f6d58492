package socks5

import (
	"net"

	"github.com/marmos91/netproto/pkg/xdr"
)

const protocolVersion byte = 5

func decodeAddress(c *xdr.Cursor) (Address, error) {
	t, err := xdr.ReadUint8(c)
	if err != nil {
		return Address{}, err
	}
	switch AddressType(t) {
	case AddressIPv4:
		raw, err := xdr.ReadBytes(c, 4)
		if err != nil {
			return Address{}, err
		}
		port, err := xdr.ReadUint16(c)
		if err != nil {
			return Address{}, err
		}
		return Address{Type: AddressIPv4, IP: net.IP(raw), Port: port}, nil

	case AddressIPv6:
		raw, err := xdr.ReadBytes(c, 16)
		if err != nil {
			return Address{}, err
		}
		port, err := xdr.ReadUint16(c)
		if err != nil {
			return Address{}, err
		}
		return Address{Type: AddressIPv6, IP: net.IP(raw), Port: port}, nil

	case AddressDomain:
		n, err := xdr.ReadUint8(c)
		if err != nil {
			return Address{}, err
		}
		raw, err := xdr.ReadBytes(c, int(n))
		if err != nil {
			return Address{}, err
		}
		port, err := xdr.ReadUint16(c)
		if err != nil {
			return Address{}, err
		}
		return Address{Type: AddressDomain, Domain: string(raw), Port: port}, nil

	default:
		return Address{}, &InvalidAddressTypeError{Type: t}
	}
}

func encodeAddress(buf []byte, a Address) []byte {
	buf = xdr.AppendUint8(buf, byte(a.Type))
	switch a.Type {
	case AddressIPv4:
		buf = append(buf, a.IP.To4()...)
	case AddressIPv6:
		buf = append(buf, a.IP.To16()...)
	case AddressDomain:
		buf = xdr.AppendUint8(buf, byte(len(a.Domain)))
		buf = append(buf, []byte(a.Domain)...)
	}
	return xdr.AppendUint16(buf, a.Port)
}

func decodeClientGreeting(c *xdr.Cursor) (ClientGreeting, error) {
	version, err := xdr.ReadUint8(c)
	if err != nil {
		return ClientGreeting{}, err
	}
	if version != protocolVersion {
		return ClientGreeting{}, &InvalidProtocolVersionError{Version: version}
	}
	n, err := xdr.ReadUint8(c)
	if err != nil {
		return ClientGreeting{}, err
	}
	raw, err := xdr.ReadBytes(c, int(n))
	if err != nil {
		return ClientGreeting{}, err
	}
	methods := make([]AuthMethod, len(raw))
	for i, b := range raw {
		methods[i] = AuthMethod(b)
	}
	return ClientGreeting{Methods: methods}, nil
}

// EncodeClientGreeting encodes a ClientGreeting.
func EncodeClientGreeting(g ClientGreeting) []byte {
	buf := xdr.AppendUint8(nil, protocolVersion)
	buf = xdr.AppendUint8(buf, byte(len(g.Methods)))
	for _, m := range g.Methods {
		buf = xdr.AppendUint8(buf, byte(m))
	}
	return buf
}

// DecodeClientGreeting decodes a complete ClientGreeting from body.
func DecodeClientGreeting(body []byte) (ClientGreeting, error) {
	c := xdr.NewCursor(body)
	return xdr.ParseUnwinding(c, decodeClientGreeting)
}

func decodeSelectedMethod(c *xdr.Cursor) (SelectedMethod, error) {
	version, err := xdr.ReadUint8(c)
	if err != nil {
		return SelectedMethod{}, err
	}
	if version != protocolVersion {
		return SelectedMethod{}, &InvalidProtocolVersionError{Version: version}
	}
	method, err := xdr.ReadUint8(c)
	if err != nil {
		return SelectedMethod{}, err
	}
	return SelectedMethod{Method: AuthMethod(method)}, nil
}

// EncodeSelectedMethod encodes a SelectedMethod.
func EncodeSelectedMethod(m SelectedMethod) []byte {
	buf := xdr.AppendUint8(nil, protocolVersion)
	return xdr.AppendUint8(buf, byte(m.Method))
}

// DecodeSelectedMethod decodes a complete SelectedMethod from body.
func DecodeSelectedMethod(body []byte) (SelectedMethod, error) {
	c := xdr.NewCursor(body)
	return xdr.ParseUnwinding(c, decodeSelectedMethod)
}

func decodeClientRequest(c *xdr.Cursor) (ClientRequest, error) {
	version, err := xdr.ReadUint8(c)
	if err != nil {
		return ClientRequest{}, err
	}
	if version != protocolVersion {
		return ClientRequest{}, &InvalidProtocolVersionError{Version: version}
	}
	command, err := xdr.ReadUint8(c)
	if err != nil {
		return ClientRequest{}, err
	}
	reserved, err := xdr.ReadUint8(c)
	if err != nil {
		return ClientRequest{}, err
	}
	if reserved != 0 {
		return ClientRequest{}, &InvalidReservedByteError{Value: reserved}
	}
	addr, err := decodeAddress(c)
	if err != nil {
		return ClientRequest{}, err
	}
	return ClientRequest{Command: Command(command), Address: addr}, nil
}

// EncodeClientRequest encodes a ClientRequest.
func EncodeClientRequest(r ClientRequest) []byte {
	buf := xdr.AppendUint8(nil, protocolVersion)
	buf = xdr.AppendUint8(buf, byte(r.Command))
	buf = xdr.AppendUint8(buf, 0)
	return encodeAddress(buf, r.Address)
}

// DecodeClientRequest decodes a complete ClientRequest from body.
func DecodeClientRequest(body []byte) (ClientRequest, error) {
	c := xdr.NewCursor(body)
	return xdr.ParseUnwinding(c, decodeClientRequest)
}

func decodeServerResponse(c *xdr.Cursor) (ServerResponse, error) {
	version, err := xdr.ReadUint8(c)
	if err != nil {
		return ServerResponse{}, err
	}
	if version != protocolVersion {
		return ServerResponse{}, &InvalidProtocolVersionError{Version: version}
	}
	reply, err := xdr.ReadUint8(c)
	if err != nil {
		return ServerResponse{}, err
	}
	reserved, err := xdr.ReadUint8(c)
	if err != nil {
		return ServerResponse{}, err
	}
	if reserved != 0 {
		return ServerResponse{}, &InvalidReservedByteError{Value: reserved}
	}
	addr, err := decodeAddress(c)
	if err != nil {
		return ServerResponse{}, err
	}
	return ServerResponse{Reply: ReplyCode(reply), BoundAddress: addr}, nil
}

// EncodeServerResponse encodes a ServerResponse.
func EncodeServerResponse(r ServerResponse) []byte {
	buf := xdr.AppendUint8(nil, protocolVersion)
	buf = xdr.AppendUint8(buf, byte(r.Reply))
	buf = xdr.AppendUint8(buf, 0)
	return encodeAddress(buf, r.BoundAddress)
}

// DecodeServerResponse decodes a complete ServerResponse from body.
func DecodeServerResponse(body []byte) (ServerResponse, error) {
	c := xdr.NewCursor(body)
	return xdr.ParseUnwinding(c, decodeServerResponse)
}

package socks5

import (
	"net"
	"testing"

	"github.com/marmos91/netproto/pkg/xdr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGreetingRoundTrip(t *testing.T) {
	g := ClientGreeting{Methods: []AuthMethod{MethodNone}}
	wire := EncodeClientGreeting(g)
	assert.Equal(t, []byte{0x05, 0x01, 0x00}, wire)

	got, err := DecodeClientGreeting(wire)
	require.NoError(t, err)
	assert.Equal(t, g, got)
}

func TestSelectedMethodRoundTrip(t *testing.T) {
	wire := EncodeSelectedMethod(SelectedMethod{Method: MethodNone})
	assert.Equal(t, []byte{0x05, 0x00}, wire)

	got, err := DecodeSelectedMethod(wire)
	require.NoError(t, err)
	assert.Equal(t, MethodNone, got.Method)
}

func TestSelectedMethodNoAcceptable(t *testing.T) {
	wire := EncodeSelectedMethod(SelectedMethod{Method: MethodNoAcceptable})
	assert.Equal(t, []byte{0x05, 0xff}, wire)
}

func TestClientRequestRoundTripIPv4(t *testing.T) {
	req := ClientRequest{
		Command: CommandConnect,
		Address: Address{Type: AddressIPv4, IP: net.IPv4(93, 184, 216, 34).To4(), Port: 80},
	}
	wire := EncodeClientRequest(req)
	assert.Equal(t, []byte{0x05, 0x01, 0x00, 0x01, 93, 184, 216, 34, 0x00, 0x50}, wire)

	got, err := DecodeClientRequest(wire)
	require.NoError(t, err)
	assert.Equal(t, req.Command, got.Command)
	assert.True(t, req.Address.IP.Equal(got.Address.IP))
	assert.Equal(t, req.Address.Port, got.Address.Port)
}

func TestClientRequestRoundTripDomain(t *testing.T) {
	req := ClientRequest{
		Command: CommandConnect,
		Address: Address{Type: AddressDomain, Domain: "example.com", Port: 443},
	}
	wire := EncodeClientRequest(req)
	got, err := DecodeClientRequest(wire)
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestServerResponseRoundTrip(t *testing.T) {
	resp := ServerResponse{
		Reply:        ReplySucceeded,
		BoundAddress: Address{Type: AddressIPv4, IP: net.IPv4zero.To4(), Port: 0},
	}
	wire := EncodeServerResponse(resp)
	assert.Equal(t, []byte{0x05, 0x00, 0x00, 0x01, 0, 0, 0, 0, 0, 0}, wire)

	got, err := DecodeServerResponse(wire)
	require.NoError(t, err)
	assert.Equal(t, resp.Reply, got.Reply)
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	_, err := DecodeClientGreeting([]byte{0x04, 0x01, 0x00})
	require.Error(t, err)
	var verErr *InvalidProtocolVersionError
	assert.ErrorAs(t, err, &verErr)
}

func TestDecodeRejectsNonZeroReservedByte(t *testing.T) {
	wire := []byte{0x05, 0x01, 0x01, 0x01, 127, 0, 0, 1, 0x00, 0x50}
	_, err := DecodeClientRequest(wire)
	require.Error(t, err)
	var reservedErr *InvalidReservedByteError
	assert.ErrorAs(t, err, &reservedErr)
}

func TestDecodeRejectsUnknownAddressType(t *testing.T) {
	wire := []byte{0x05, 0x01, 0x00, 0x02, 0x00, 0x50}
	_, err := DecodeClientRequest(wire)
	require.Error(t, err)
	var addrErr *InvalidAddressTypeError
	assert.ErrorAs(t, err, &addrErr)
}

func TestDecodeUnwindsOnTruncatedInput(t *testing.T) {
	full := EncodeClientRequest(ClientRequest{
		Command: CommandConnect,
		Address: Address{Type: AddressIPv4, IP: net.IPv4zero.To4(), Port: 80},
	})
	for n := 0; n < len(full); n++ {
		c := xdr.NewCursor(full[:n])
		_, err := xdr.ParseUnwinding(c, decodeClientRequest)
		require.Error(t, err)
		assert.Equal(t, 0, c.Pos(), "cursor must not advance on a short/failed parse at prefix length %d", n)
	}
}

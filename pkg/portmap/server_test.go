package portmap

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/marmos91/netproto/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	srv := NewServer(ServerConfig{Port: 0, Registry: NewRegistry()})
	go func() { _ = srv.Serve(context.Background()) }()
	t.Cleanup(srv.Stop)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if srv.Addr() != "" && srv.UDPAddr() != "" {
			return srv
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("portmap server never started listening")
	return nil
}

func TestServerSetThenGetPortOverTCP(t *testing.T) {
	srv := startTestServer(t)
	client := &Client{Network: "tcp", Addr: srv.Addr()}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := client.Set(ctx, 100003, 3, ProtocolTCP, 2049)
	require.NoError(t, err)
	assert.True(t, ok)

	port, err := client.GetPort(ctx, 100003, 3, ProtocolTCP)
	require.NoError(t, err)
	assert.Equal(t, 2049, port)
}

func TestServerGetPortMissUnsetReturnsNoSuchMapping(t *testing.T) {
	srv := startTestServer(t)
	client := &Client{Network: "tcp", Addr: srv.Addr()}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := client.GetPort(ctx, 999999, 1, ProtocolTCP)
	assert.ErrorIs(t, err, ErrNoSuchMapping)

	ok, err := client.Set(ctx, 100003, 3, ProtocolUDP, 2049)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = client.Unset(ctx, 100003, 3, ProtocolUDP)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = client.GetPort(ctx, 100003, 3, ProtocolUDP)
	assert.ErrorIs(t, err, ErrNoSuchMapping)
}

// TestTCPAndUDPTransportsAgree exercises the dual-transport parity
// property: the same mapping request produces the same logical reply over
// TCP (record-marked) and UDP (unframed, one packet per message).
func TestTCPAndUDPTransportsAgree(t *testing.T) {
	srv := startTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tcpClient := &Client{Network: "tcp", Addr: srv.Addr()}
	_, err := tcpClient.Set(ctx, 100003, 3, ProtocolTCP, 2049)
	require.NoError(t, err)

	tcpPort, err := tcpClient.GetPort(ctx, 100003, 3, ProtocolTCP)
	require.NoError(t, err)

	udpClient := &Client{Network: "udp", Addr: srv.UDPAddr()}
	udpPort, err := udpClient.GetPort(ctx, 100003, 3, ProtocolTCP)
	require.NoError(t, err)

	assert.Equal(t, tcpPort, udpPort)
}

func TestServerDump(t *testing.T) {
	srv := startTestServer(t)
	client := &Client{Network: "tcp", Addr: srv.Addr()}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := client.Set(ctx, 100003, 3, ProtocolTCP, 2049)
	require.NoError(t, err)
	_, err = client.Set(ctx, 100005, 3, ProtocolTCP, 635)
	require.NoError(t, err)

	mappings, err := client.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, mappings, 2)
}

func TestServerUnknownProgramIsProgUnavail(t *testing.T) {
	srv := startTestServer(t)

	conn, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(2*time.Second)))

	call := rpc.CallBody{
		RPCVersion:     rpc.RPCVersion,
		Program:        999999,
		ProgramVersion: ProgramVersion,
		Procedure:      ProcNull,
		Credentials:    rpc.OpaqueAuth{Flavor: rpc.AuthNone},
		Verifier:       rpc.OpaqueAuth{Flavor: rpc.AuthNone},
	}
	payload := rpc.EncodeCall(1, call, nil)
	_, err = conn.Write(rpc.EncodeMessage(payload))
	require.NoError(t, err)

	var hdrBuf [4]byte
	_, err = io.ReadFull(conn, hdrBuf[:])
	require.NoError(t, err)
	length := binary.BigEndian.Uint32(hdrBuf[:]) & 0x7FFFFFFF
	reply := make([]byte, length)
	_, err = io.ReadFull(conn, reply)
	require.NoError(t, err)

	msg, err := rpc.DecodeReply(reply, nil)
	require.NoError(t, err)
	require.NotNil(t, msg.Accepted)
	assert.Equal(t, rpc.AcceptProgUnavail, msg.Accepted.Status)
}

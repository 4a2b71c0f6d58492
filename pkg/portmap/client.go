package portmap

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/marmos91/netproto/pkg/rpc"
)

// ErrNoSuchMapping is returned by Client.GetPort when the portmapper has
// no registration for the requested (program, version, protocol).
var ErrNoSuchMapping = errors.New("portmap: no such mapping")

// Client is a minimal synchronous portmap v2 client: one request, one
// reply, over either TCP or UDP, used by code that needs to resolve an
// NFS/MOUNT program's port before dialing it directly.
type Client struct {
	// Network is "tcp" or "udp".
	Network string
	// Addr is the portmapper's address, e.g. "127.0.0.1:111".
	Addr string
}

func (c *Client) call(ctx context.Context, procedure uint32, args []byte) ([]byte, error) {
	conn, err := net.Dial(c.Network, c.Addr)
	if err != nil {
		return nil, fmt.Errorf("portmap: dial %s %s: %w", c.Network, c.Addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	xid := uint32(1)
	call := rpc.CallBody{
		RPCVersion:     rpc.RPCVersion,
		Program:        Program,
		ProgramVersion: ProgramVersion,
		Procedure:      procedure,
		Credentials:    rpc.OpaqueAuth{Flavor: rpc.AuthNone},
		Verifier:       rpc.OpaqueAuth{Flavor: rpc.AuthNone},
	}
	payload := rpc.EncodeCall(xid, call, args)

	if c.Network == "tcp" {
		if _, err := conn.Write(rpc.EncodeMessage(payload)); err != nil {
			return nil, fmt.Errorf("portmap: write call: %w", err)
		}
	} else {
		if _, err := conn.Write(payload); err != nil {
			return nil, fmt.Errorf("portmap: write call: %w", err)
		}
	}

	var reply []byte
	if c.Network == "tcp" {
		var hdrBuf [4]byte
		if _, err := io.ReadFull(conn, hdrBuf[:]); err != nil {
			return nil, fmt.Errorf("portmap: read reply header: %w", err)
		}
		length := binary.BigEndian.Uint32(hdrBuf[:]) & 0x7FFFFFFF
		reply = make([]byte, length)
		if _, err := io.ReadFull(conn, reply); err != nil {
			return nil, fmt.Errorf("portmap: read reply body: %w", err)
		}
	} else {
		buf := make([]byte, 65535)
		n, err := conn.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("portmap: read reply: %w", err)
		}
		reply = buf[:n]
	}

	msg, err := rpc.DecodeReply(reply, nil)
	if err != nil {
		return nil, fmt.Errorf("portmap: decode reply: %w", err)
	}
	if msg.Denied != nil {
		return nil, fmt.Errorf("portmap: call denied (reject_stat %d)", msg.Denied.Status)
	}
	if msg.Accepted.Status != rpc.AcceptSuccess {
		return nil, fmt.Errorf("portmap: accept_stat %d", msg.Accepted.Status)
	}
	return msg.Accepted.Results, nil
}

// GetPort resolves the port registered for (program, version, protocol).
// It returns ErrNoSuchMapping if the portmapper holds no such registration.
func (c *Client) GetPort(ctx context.Context, program, version, protocol uint32) (int, error) {
	args := EncodeMapping(Mapping{Program: program, Version: version, Protocol: protocol})
	body, err := c.call(ctx, ProcGetPort, args)
	if err != nil {
		return 0, err
	}
	port, err := DecodePortReply(body)
	if err != nil {
		return 0, err
	}
	if port == 0 {
		return 0, ErrNoSuchMapping
	}
	return int(port), nil
}

// Set registers program/version/protocol at port with the portmapper.
func (c *Client) Set(ctx context.Context, program, version, protocol, port uint32) (bool, error) {
	args := EncodeMapping(Mapping{Program: program, Version: version, Protocol: protocol, Port: port})
	body, err := c.call(ctx, ProcSet, args)
	if err != nil {
		return false, err
	}
	return DecodeBoolReply(body)
}

// Unset removes the registration for program/version/protocol.
func (c *Client) Unset(ctx context.Context, program, version, protocol uint32) (bool, error) {
	args := EncodeMapping(Mapping{Program: program, Version: version, Protocol: protocol})
	body, err := c.call(ctx, ProcUnset, args)
	if err != nil {
		return false, err
	}
	return DecodeBoolReply(body)
}

// Dump lists every registration the portmapper currently holds.
func (c *Client) Dump(ctx context.Context) ([]Mapping, error) {
	body, err := c.call(ctx, ProcDump, nil)
	if err != nil {
		return nil, err
	}
	return DecodeDumpReply(body)
}

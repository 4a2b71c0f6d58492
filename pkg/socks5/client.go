package socks5

import (
	"errors"
	"fmt"
	"time"

	"github.com/marmos91/netproto/pkg/metrics"
	"github.com/marmos91/netproto/pkg/pipeline"
	"github.com/marmos91/netproto/pkg/xdr"
)

// ClientState is a SOCKSv5 client handshake state (spec §4.H).
type ClientState int

const (
	ClientInactive ClientState = iota
	ClientWaitForClientGreeting
	ClientWaitForAuthMethod
	ClientPendingAuthentication
	ClientWaitForClientRequest
	ClientWaitForServerResponse
	ClientActive
)

// ClientHandler drives the SOCKSv5 client handshake over one channel.
// Before Active, application writes are queued in a MarkedBuffer and
// inbound bytes are consumed entirely by the handshake; once Active,
// reads and writes pass through unmodified.
type ClientHandler struct {
	pipeline.NopHandler

	Target   Address
	Delegate AuthenticationDelegate
	// Metrics is optional; nil disables handshake recording.
	Metrics metrics.Metrics

	state          ClientState
	offeredMethods []AuthMethod
	inbound        []byte
	writes         *pipeline.MarkedBuffer[[]byte]
	handshakeStart time.Time
}

// NewClientHandler returns a ClientHandler proxying to target through
// delegate's authentication method negotiation. Target must be an IPv4,
// IPv6, or domain address — never a UNIX domain socket, which SocksAddress
// has no encoding for.
func NewClientHandler(name string, target Address, delegate AuthenticationDelegate) (*ClientHandler, error) {
	switch target.Type {
	case AddressIPv4, AddressIPv6, AddressDomain:
	default:
		return nil, fmt.Errorf("socks5: unsupported target address type %d", target.Type)
	}
	return &ClientHandler{
		NopHandler: pipeline.NopHandler{HandlerName: name},
		Target:     target,
		Delegate:   delegate,
		Metrics:    metrics.Noop{},
		writes:     pipeline.NewMarkedBuffer[[]byte](),
	}, nil
}

func (h *ClientHandler) OnChannelActive(ctx *pipeline.HandlerContext) {
	if h.state != ClientInactive {
		h.fail(ctx, ErrInvalidClientState)
		return
	}
	h.state = ClientWaitForClientGreeting
	h.handshakeStart = time.Now()
	h.offeredMethods = h.Delegate.SupportedMethods()
	greeting := ClientGreeting{Methods: h.offeredMethods}

	h.state = ClientWaitForAuthMethod
	ctx.Write(EncodeClientGreeting(greeting), pipeline.NewPromise[struct{}]())
	ctx.Flush()
	ctx.FireChannelActive()
}

func (h *ClientHandler) OnRead(ctx *pipeline.HandlerContext, msg any) {
	chunk, ok := msg.([]byte)
	if !ok {
		ctx.FireError(fmt.Errorf("socks5: client handler got non-[]byte message %T", msg))
		return
	}
	h.inbound = append(h.inbound, chunk...)
	h.pump(ctx)
}

func (h *ClientHandler) OnWrite(ctx *pipeline.HandlerContext, msg any, promise *pipeline.Promise[struct{}]) {
	if h.state == ClientActive {
		ctx.Write(msg, promise)
		return
	}
	data, ok := msg.([]byte)
	if !ok {
		promise.Fail(fmt.Errorf("socks5: client handler got non-[]byte write %T", msg))
		return
	}
	h.writes.Add(data, promise)
}

func (h *ClientHandler) OnFlush(ctx *pipeline.HandlerContext) {
	if h.state == ClientActive {
		ctx.Flush()
	}
	// Before Active, buffered writes flush themselves once the proxy is
	// established; an explicit Flush request before then has nothing to
	// do, since nothing has actually reached the transport yet.
}

func (h *ClientHandler) pump(ctx *pipeline.HandlerContext) {
	for {
		switch h.state {
		case ClientWaitForAuthMethod:
			c := xdr.NewCursor(h.inbound)
			sel, err := xdr.ParseUnwinding(c, decodeSelectedMethod)
			if errors.Is(err, xdr.ErrShortBuffer) {
				return
			}
			if err != nil {
				h.fail(ctx, err)
				return
			}
			h.inbound = h.inbound[c.Pos():]

			if !containsMethod(h.offeredMethods, sel.Method) {
				h.fail(ctx, &InvalidAuthenticationSelectionError{Method: sel.Method})
				return
			}
			h.state = ClientPendingAuthentication
			if !h.applyAuthResult(ctx, h.Delegate.ServerSelectedMethod(sel.Method)) {
				return
			}

		case ClientPendingAuthentication:
			if len(h.inbound) == 0 {
				return
			}
			if !h.applyAuthResult(ctx, h.Delegate.HandleIncoming(&h.inbound)) {
				return
			}

		case ClientWaitForServerResponse:
			c := xdr.NewCursor(h.inbound)
			resp, err := xdr.ParseUnwinding(c, decodeServerResponse)
			if errors.Is(err, xdr.ErrShortBuffer) {
				return
			}
			if err != nil {
				h.fail(ctx, err)
				return
			}
			h.inbound = h.inbound[c.Pos():]

			if resp.Reply != ReplySucceeded {
				h.fail(ctx, &ConnectionFailedError{Reply: resp.Reply})
				return
			}
			h.state = ClientActive
			if h.Metrics != nil {
				h.Metrics.RecordSocksHandshake("client", time.Since(h.handshakeStart), true)
			}
			h.drainWrites(ctx)
			if len(h.inbound) > 0 {
				residual := h.inbound
				h.inbound = nil
				ctx.FireRead(residual)
			}
			return

		case ClientActive:
			if len(h.inbound) > 0 {
				out := h.inbound
				h.inbound = nil
				ctx.FireRead(out)
			}
			return

		default:
			h.fail(ctx, ErrUnexpectedRead)
			return
		}
	}
}

// applyAuthResult reacts to one AuthResult from the delegate. It returns
// whether pump should keep looping (true) or wait for more bytes (false).
func (h *ClientHandler) applyAuthResult(ctx *pipeline.HandlerContext, result AuthResult) bool {
	switch result.Kind {
	case AuthNeedsMoreData:
		return false
	case AuthRespond:
		ctx.Write(result.Bytes, pipeline.NewPromise[struct{}]())
		ctx.Flush()
		return false
	case AuthFailed:
		h.fail(ctx, ErrNoValidAuthenticationMethod)
		return false
	case AuthComplete:
		request := ClientRequest{Command: CommandConnect, Address: h.Target}
		h.state = ClientWaitForServerResponse
		ctx.Write(EncodeClientRequest(request), pipeline.NewPromise[struct{}]())
		ctx.Flush()
		return true
	default:
		h.fail(ctx, ErrUnexpectedRead)
		return false
	}
}

func (h *ClientHandler) drainWrites(ctx *pipeline.HandlerContext) {
	entries := h.writes.DrainAll()
	for _, e := range entries {
		ctx.Write(e.Msg, e.Promise)
	}
	ctx.Flush()
}

func (h *ClientHandler) fail(ctx *pipeline.HandlerContext, err error) {
	if h.state != ClientActive && h.Metrics != nil {
		h.Metrics.RecordSocksHandshake("client", time.Since(h.handshakeStart), false)
	}
	ctx.FireError(err)
	ctx.Channel().Close(err)
}

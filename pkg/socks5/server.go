package socks5

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marmos91/netproto/pkg/metrics"
	"github.com/marmos91/netproto/pkg/pipeline"
	"github.com/marmos91/netproto/pkg/xdr"
)

// ServerState is a SOCKSv5 server handshake state (spec §4.I).
type ServerState int

const (
	ServerInactive ServerState = iota
	ServerWaitForClientGreeting
	ServerWaitForAuthenticationMethod
	ServerPendingAuthentication
	ServerWaitForClientRequest
	ServerWaitForServerResponse
	ServerActive
)

// ProxyEstablished is fired as a user inbound event once the server has
// sent a successful ServerResponse (spec §4.I step 4).
type ProxyEstablished struct {
	Request ClientRequest
}

// Connector performs the actual outbound connect a CONNECT request asks
// for. It is out of this package's scope (spec §4.I step 3): the server
// handler only decides when to ask for one and how to react to the
// result. Connect must complete promise from whatever goroutine performs
// the dial; the handler hops the result back onto the channel's own loop.
type Connector interface {
	Connect(ctx context.Context, req ClientRequest, promise *pipeline.Promise[ServerResponse])
}

// ServerHandler drives the SOCKSv5 server handshake over one channel.
type ServerHandler struct {
	pipeline.NopHandler

	Delegate  AuthenticationDelegate
	Connector Connector
	// Metrics is optional; nil disables handshake recording.
	Metrics metrics.Metrics

	ctx            context.Context
	cancel         context.CancelFunc
	state          ServerState
	inbound        []byte
	selectedMethod AuthMethod
	handshakeStart time.Time
}

// NewServerHandler returns a ServerHandler that selects among the methods
// delegate supports and hands successful CONNECT requests to connector.
func NewServerHandler(name string, delegate AuthenticationDelegate, connector Connector) *ServerHandler {
	return &ServerHandler{
		NopHandler: pipeline.NopHandler{HandlerName: name},
		Delegate:   delegate,
		Connector:  connector,
		Metrics:    metrics.Noop{},
	}
}

func (h *ServerHandler) OnChannelActive(ctx *pipeline.HandlerContext) {
	if h.state != ServerInactive {
		h.fail(ctx, ErrInvalidServerState)
		return
	}
	h.ctx, h.cancel = context.WithCancel(context.Background())
	h.state = ServerWaitForClientGreeting
	h.handshakeStart = time.Now()
	ctx.FireChannelActive()
}

func (h *ServerHandler) OnRead(ctx *pipeline.HandlerContext, msg any) {
	chunk, ok := msg.([]byte)
	if !ok {
		ctx.FireError(fmt.Errorf("socks5: server handler got non-[]byte message %T", msg))
		return
	}
	h.inbound = append(h.inbound, chunk...)
	h.pump(ctx)
}

// OnWrite rejects any application write that arrives before the proxy is
// established: unlike the client side, the server handshake owns the
// connection outright until Active, so an out-of-order write is a usage
// error, not something to buffer (spec §4.I: "fails the promise with
// InvalidServerState").
func (h *ServerHandler) OnWrite(ctx *pipeline.HandlerContext, msg any, promise *pipeline.Promise[struct{}]) {
	if h.state != ServerActive {
		promise.Fail(ErrInvalidServerState)
		return
	}
	ctx.Write(msg, promise)
}

func (h *ServerHandler) OnFlush(ctx *pipeline.HandlerContext) {
	if h.state == ServerActive {
		ctx.Flush()
	}
}

func (h *ServerHandler) pump(ctx *pipeline.HandlerContext) {
	for {
		switch h.state {
		case ServerWaitForClientGreeting:
			c := xdr.NewCursor(h.inbound)
			greeting, err := xdr.ParseUnwinding(c, decodeClientGreeting)
			if errors.Is(err, xdr.ErrShortBuffer) {
				return
			}
			if err != nil {
				h.fail(ctx, err)
				return
			}
			h.inbound = h.inbound[c.Pos():]

			method := h.selectMethod(greeting.Methods)
			ctx.Write(EncodeSelectedMethod(SelectedMethod{Method: method}), pipeline.NewPromise[struct{}]())
			ctx.Flush()

			if method == MethodNoAcceptable {
				h.fail(ctx, ErrNoValidAuthenticationMethod)
				return
			}
			h.selectedMethod = method
			h.state = ServerPendingAuthentication

		case ServerPendingAuthentication:
			if h.selectedMethod == MethodNone {
				h.state = ServerWaitForClientRequest
				continue
			}
			if len(h.inbound) == 0 {
				return
			}
			result := h.Delegate.HandleIncoming(&h.inbound)
			switch result.Kind {
			case AuthNeedsMoreData:
				return
			case AuthRespond:
				ctx.Write(result.Bytes, pipeline.NewPromise[struct{}]())
				ctx.Flush()
				return
			case AuthFailed:
				h.fail(ctx, ErrNoValidAuthenticationMethod)
				return
			case AuthComplete:
				h.state = ServerWaitForClientRequest
			}

		case ServerWaitForClientRequest:
			c := xdr.NewCursor(h.inbound)
			req, err := xdr.ParseUnwinding(c, decodeClientRequest)
			if errors.Is(err, xdr.ErrShortBuffer) {
				return
			}
			if err != nil {
				h.fail(ctx, err)
				return
			}
			h.inbound = h.inbound[c.Pos():]

			h.state = ServerWaitForServerResponse
			promise := pipeline.NewPromise[ServerResponse]()
			h.Connector.Connect(h.ctx, req, promise)
			go func() {
				resp, err := promise.Result()
				ctx.Channel().Execute(func() { h.onConnectResult(ctx, req, resp, err) })
			}()
			return

		case ServerActive:
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

func (h *ServerHandler) onConnectResult(ctx *pipeline.HandlerContext, req ClientRequest, resp ServerResponse, err error) {
	if h.state != ServerWaitForServerResponse {
		// The channel already closed (fail/timeout) while the connect was
		// in flight; nothing left to reply to.
		return
	}
	if err != nil {
		resp = ServerResponse{Reply: ReplyServerFailure}
	}

	ctx.Write(EncodeServerResponse(resp), pipeline.NewPromise[struct{}]())
	ctx.Flush()

	if resp.Reply != ReplySucceeded {
		h.fail(ctx, &ConnectionFailedError{Reply: resp.Reply})
		return
	}
	h.state = ServerActive
	if h.Metrics != nil {
		h.Metrics.RecordSocksHandshake("server", time.Since(h.handshakeStart), true)
	}
	ctx.FireUserEvent(ProxyEstablished{Request: req})
	h.pump(ctx)
}

func (h *ServerHandler) selectMethod(offered []AuthMethod) AuthMethod {
	for _, candidate := range h.Delegate.SupportedMethods() {
		if containsMethod(offered, candidate) {
			return candidate
		}
	}
	return MethodNoAcceptable
}

func (h *ServerHandler) fail(ctx *pipeline.HandlerContext, err error) {
	if h.state != ServerActive && h.Metrics != nil {
		h.Metrics.RecordSocksHandshake("server", time.Since(h.handshakeStart), false)
	}
	if h.cancel != nil {
		h.cancel()
	}
	ctx.FireError(err)
	ctx.Channel().Close(err)
}

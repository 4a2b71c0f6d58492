package pipeline

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/marmos91/netproto/internal/slogx"
)

// ErrChannelClosed is the failure reason given to every write promise still
// pending when a channel closes.
var ErrChannelClosed = errors.New("pipeline: channel closed")

// Transport is the minimal byte sink/source a Channel writes to and closes.
// net.Conn satisfies it.
type Transport interface {
	Write(p []byte) (int, error)
	Close() error
}

type namedHandler struct {
	name    string
	handler Handler
}

// Channel is one connection's event loop: a single goroutine drains a task
// queue, so every handler callback for this channel observes a
// happens-before total order with no locking required in handler bodies
// (spec §5).
type Channel struct {
	ID string

	transport Transport
	handlers  []namedHandler
	contexts  []*HandlerContext

	tasks     chan func()
	closeSig  chan func()
	doneCh    chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once

	// pendingWrites is only ever touched from inside a task running on this
	// channel's own loop goroutine, so it needs no lock of its own.
	pendingWrites map[*Promise[struct{}]]struct{}
}

// NewChannel wraps transport in a channel with an empty handler chain.
// Install handlers with AddLast, then call Run.
func NewChannel(id string, transport Transport) *Channel {
	return &Channel{
		ID:            id,
		transport:     transport,
		tasks:         make(chan func(), 64),
		closeSig:      make(chan func(), 1),
		doneCh:        make(chan struct{}),
		pendingWrites: make(map[*Promise[struct{}]]struct{}),
	}
}

// NewChannelWithGeneratedID wraps transport in a channel whose ID is a
// freshly generated UUID, for servers that accept many connections and
// have no natural per-connection identifier of their own to use in logs.
func NewChannelWithGeneratedID(transport Transport) *Channel {
	return NewChannel(uuid.NewString(), transport)
}

// AddLast appends a handler at the application end of the chain. Must be
// called before Run; the chain is fixed for the channel's lifetime.
func (ch *Channel) AddLast(name string, h Handler) {
	ch.handlers = append(ch.handlers, namedHandler{name: name, handler: h})
}

// Run builds the handler contexts and starts the event-loop goroutine. Call
// exactly once, after installing every handler.
func (ch *Channel) Run() {
	ch.contexts = make([]*HandlerContext, len(ch.handlers))
	for i := range ch.handlers {
		ch.contexts[i] = &HandlerContext{channel: ch, index: i}
	}
	go ch.loop()
}

func (ch *Channel) loop() {
	defer close(ch.doneCh)
	for {
		select {
		case fn := <-ch.tasks:
			fn()
		case fn := <-ch.closeSig:
			fn()
			return
		}
	}
}

// Execute schedules fn to run on this channel's event loop. It is the only
// safe way to hop a Promise completion, a timer callback, or any other
// cross-goroutine event back onto the owning loop.
func (ch *Channel) Execute(fn func()) {
	if ch.closed.Load() {
		return
	}
	select {
	case ch.tasks <- fn:
	case <-ch.doneCh:
	}
}

// FireChannelActive schedules the channel-active event at the head of the
// chain (fired once, when the transport becomes ready).
func (ch *Channel) FireChannelActive() {
	ch.Execute(func() { ch.invokeActive(0) })
}

func (ch *Channel) invokeActive(i int) {
	if i >= len(ch.handlers) {
		return
	}
	ch.handlers[i].handler.OnChannelActive(ch.contexts[i])
}

// FireRead schedules delivery of an inbound message at the head of the
// chain (the stage closest to the transport).
func (ch *Channel) FireRead(msg any) {
	ch.Execute(func() { ch.invokeRead(0, msg) })
}

func (ch *Channel) invokeRead(i int, msg any) {
	if i >= len(ch.handlers) {
		slogx.Debug("pipeline: read reached end of chain, dropping", slogx.KeyChannel, ch.ID)
		return
	}
	ch.handlers[i].handler.OnRead(ch.contexts[i], msg)
}

// FireError schedules delivery of an error at the head of the chain.
func (ch *Channel) FireError(err error) {
	ch.Execute(func() { ch.invokeError(0, err) })
}

func (ch *Channel) invokeError(i int, err error) {
	if i >= len(ch.handlers) {
		slogx.Error("pipeline: unhandled error reached end of chain", slogx.KeyChannel, ch.ID, slogx.KeyError, err)
		return
	}
	ch.handlers[i].handler.OnError(ch.contexts[i], err)
}

// FireUserEvent schedules delivery of an in-band user event (e.g. "proxy
// established") at the head of the chain.
func (ch *Channel) FireUserEvent(event any) {
	ch.Execute(func() { ch.invokeUserEvent(0, event) })
}

func (ch *Channel) invokeUserEvent(i int, event any) {
	if i >= len(ch.handlers) {
		return
	}
	ch.handlers[i].handler.OnUserEvent(ch.contexts[i], event)
}

// Write schedules an outbound message starting at the tail of the chain
// (the stage closest to the application), travelling toward the transport.
func (ch *Channel) Write(msg any, promise *Promise[struct{}]) {
	ch.Execute(func() {
		ch.pendingWrites[promise] = struct{}{}
		ch.invokeWrite(len(ch.handlers)-1, msg, promise)
	})
}

func (ch *Channel) invokeWrite(i int, msg any, promise *Promise[struct{}]) {
	if i < 0 {
		ch.writeToTransport(msg, promise)
		return
	}
	ch.handlers[i].handler.OnWrite(ch.contexts[i], msg, promise)
}

func (ch *Channel) writeToTransport(msg any, promise *Promise[struct{}]) {
	delete(ch.pendingWrites, promise)
	data, ok := msg.([]byte)
	if !ok {
		promise.Fail(fmt.Errorf("pipeline: non-[]byte message %T reached transport", msg))
		return
	}
	if _, err := ch.transport.Write(data); err != nil {
		promise.Fail(err)
		return
	}
	promise.Succeed(struct{}{})
}

// Flush schedules a flush request starting at the tail of the chain.
func (ch *Channel) Flush() {
	ch.Execute(func() { ch.invokeFlush(len(ch.handlers) - 1) })
}

func (ch *Channel) invokeFlush(i int) {
	if i < 0 {
		return
	}
	ch.handlers[i].handler.OnFlush(ch.contexts[i])
}

// WriteAndFlush is Write immediately followed by Flush, for handlers that
// don't need to buffer.
func (ch *Channel) WriteAndFlush(msg any, promise *Promise[struct{}]) {
	ch.Write(msg, promise)
	ch.Flush()
}

// Close closes the transport and fails every pending write promise with
// cause (or ErrChannelClosed if cause is nil). Idempotent: only the first
// call has any effect.
func (ch *Channel) Close(cause error) {
	ch.closeOnce.Do(func() {
		ch.closed.Store(true)
		failWith := cause
		if failWith == nil {
			failWith = ErrChannelClosed
		}
		ch.closeSig <- func() {
			for p := range ch.pendingWrites {
				p.Fail(failWith)
			}
			ch.pendingWrites = nil
			if err := ch.transport.Close(); err != nil {
				slogx.Warn("pipeline: transport close failed", slogx.KeyChannel, ch.ID, slogx.KeyError, err)
			}
			if cause != nil {
				slogx.Info("pipeline: channel closed", slogx.KeyChannel, ch.ID, slogx.KeyError, cause)
			}
		}
	})
}

// Done returns a channel closed once the event loop has exited.
func (ch *Channel) Done() <-chan struct{} { return ch.doneCh }

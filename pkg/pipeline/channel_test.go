package pipeline

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func (t *fakeTransport) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, errors.New("write to closed transport")
	}
	return t.buf.Write(p)
}

func (t *fakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *fakeTransport) bytes() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]byte(nil), t.buf.Bytes()...)
}

// echoHandler records every inbound message it sees and echoes it back out.
type echoHandler struct {
	NopHandler
	mu   sync.Mutex
	seen []any
}

func (h *echoHandler) OnRead(ctx *HandlerContext, msg any) {
	h.mu.Lock()
	h.seen = append(h.seen, msg)
	h.mu.Unlock()
	ctx.Write(msg, NewPromise[struct{}]())
	ctx.Flush()
}

func waitForCondition(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	require.True(t, cond(), "condition never became true")
}

func TestChannelReadIsForwardedAndEchoed(t *testing.T) {
	transport := &fakeTransport{}
	ch := NewChannel("test", transport)
	echo := &echoHandler{NopHandler: NopHandler{HandlerName: "echo"}}
	ch.AddLast("echo", echo)
	ch.Run()

	ch.FireRead([]byte("hello"))

	waitForCondition(t, time.Second, func() bool {
		return len(transport.bytes()) == len("hello")
	})
	assert.Equal(t, []byte("hello"), transport.bytes())
}

func TestChannelWritePromiseCompletes(t *testing.T) {
	transport := &fakeTransport{}
	ch := NewChannel("test", transport)
	ch.Run()

	p := NewPromise[struct{}]()
	ch.Write([]byte("payload"), p)
	ch.Flush()

	_, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), transport.bytes())
}

// holdingHandler simulates an asynchronous filesystem-style handler: it
// receives the write but never forwards it or completes the promise,
// expressing asynchrony the way spec §5 describes ("returning without
// completing a promise").
type holdingHandler struct {
	NopHandler
	mu      sync.Mutex
	entered bool
}

func (h *holdingHandler) OnWrite(ctx *HandlerContext, msg any, promise *Promise[struct{}]) {
	h.mu.Lock()
	h.entered = true
	h.mu.Unlock()
}

func (h *holdingHandler) wasEntered() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entered
}

func TestChannelCloseFailsPendingWrites(t *testing.T) {
	transport := &fakeTransport{}
	ch := NewChannel("test", transport)
	hold := &holdingHandler{NopHandler: NopHandler{HandlerName: "hold"}}
	ch.AddLast("hold", hold)
	ch.Run()

	p := NewPromise[struct{}]()
	ch.Write([]byte("x"), p)

	waitForCondition(t, time.Second, hold.wasEntered)

	ch.Close(errors.New("connection reset"))

	_, err := p.Result()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

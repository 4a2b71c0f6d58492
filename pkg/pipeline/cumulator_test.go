package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// lengthPrefixedDecoder decodes a trivial 1-byte-length-prefixed frame,
// standing in for rpc.Framer without importing it (pipeline has no
// dependency on rpc).
type lengthPrefixedDecoder struct{}

func (lengthPrefixedDecoder) Decode(buf []byte) ([]byte, int, bool, error) {
	if len(buf) < 1 {
		return nil, 0, false, nil
	}
	n := int(buf[0])
	if len(buf) < 1+n {
		return nil, 0, false, nil
	}
	return buf[1 : 1+n], 1 + n, true, nil
}

type captureHandler struct {
	NopHandler
	got [][]byte
}

func (h *captureHandler) OnRead(ctx *HandlerContext, msg any) {
	h.got = append(h.got, msg.([]byte))
}

func TestFrameDecoderHandlerSingleMessage(t *testing.T) {
	decoder := NewFrameDecoderHandler("decode", lengthPrefixedDecoder{})
	capture := &captureHandler{}
	ctx := &HandlerContext{index: 0}
	ch := &Channel{handlers: []namedHandler{{"decode", decoder}, {"capture", capture}}}
	ch.contexts = []*HandlerContext{ctx, {channel: ch, index: 1}}
	ctx.channel = ch

	decoder.OnRead(ctx, []byte{3, 'a', 'b', 'c'})
	assert.Equal(t, [][]byte{[]byte("abc")}, capture.got)
}

func TestFrameDecoderHandlerAccumulatesPartial(t *testing.T) {
	decoder := NewFrameDecoderHandler("decode", lengthPrefixedDecoder{})
	capture := &captureHandler{}
	ch := &Channel{handlers: []namedHandler{{"decode", decoder}, {"capture", capture}}}
	ctx := &HandlerContext{channel: ch, index: 0}
	ch.contexts = []*HandlerContext{ctx, {channel: ch, index: 1}}

	decoder.OnRead(ctx, []byte{3, 'a'})
	assert.Empty(t, capture.got, "partial frame should not be forwarded yet")

	decoder.OnRead(ctx, []byte{'b', 'c'})
	assert.Equal(t, [][]byte{[]byte("abc")}, capture.got)
}

func TestFrameDecoderHandlerMultipleMessagesInOneChunk(t *testing.T) {
	decoder := NewFrameDecoderHandler("decode", lengthPrefixedDecoder{})
	capture := &captureHandler{}
	ch := &Channel{handlers: []namedHandler{{"decode", decoder}, {"capture", capture}}}
	ctx := &HandlerContext{channel: ch, index: 0}
	ch.contexts = []*HandlerContext{ctx, {channel: ch, index: 1}}

	decoder.OnRead(ctx, []byte{1, 'x', 2, 'y', 'z'})
	assert.Equal(t, [][]byte{[]byte("x"), []byte("yz")}, capture.got)
}

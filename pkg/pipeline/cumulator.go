package pipeline

import "fmt"

// Decoder is a cumulative byte-to-message decoder (component B): given the
// bytes accumulated so far, it returns a complete message and how many
// bytes it consumed, or reports "not enough data yet" without consuming or
// otherwise disturbing anything. rpc.Framer satisfies this shape without
// either package importing the other.
type Decoder interface {
	Decode(buf []byte) (msg []byte, consumed int, ok bool, err error)
}

// FrameDecoderHandler accumulates inbound []byte chunks into a cumulation
// buffer and runs Decoder in a loop until it reports "need more data",
// forwarding each decoded message as a []byte read (spec §4.B).
type FrameDecoderHandler struct {
	NopHandler
	Decoder Decoder
	buf     []byte
}

// NewFrameDecoderHandler returns a handler named name that drives d.
func NewFrameDecoderHandler(name string, d Decoder) *FrameDecoderHandler {
	return &FrameDecoderHandler{NopHandler: NopHandler{HandlerName: name}, Decoder: d}
}

func (h *FrameDecoderHandler) OnRead(ctx *HandlerContext, msg any) {
	chunk, ok := msg.([]byte)
	if !ok {
		ctx.FireError(fmt.Errorf("pipeline: frame decoder got non-[]byte message %T", msg))
		return
	}
	h.buf = append(h.buf, chunk...)
	for {
		out, consumed, ok, err := h.Decoder.Decode(h.buf)
		if err != nil {
			ctx.FireError(err)
			return
		}
		if !ok {
			return
		}
		h.buf = h.buf[consumed:]
		ctx.FireRead(out)
	}
}

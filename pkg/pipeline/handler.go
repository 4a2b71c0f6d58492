package pipeline

// Handler is one stage of a Channel's ordered pipeline. A concrete handler
// implements whichever subset of roles it cares about and embeds NopHandler
// for the rest, so it only needs to override the methods it actually uses.
type Handler interface {
	Name() string
	OnChannelActive(ctx *HandlerContext)
	OnRead(ctx *HandlerContext, msg any)
	OnWrite(ctx *HandlerContext, msg any, promise *Promise[struct{}])
	OnFlush(ctx *HandlerContext)
	OnError(ctx *HandlerContext, err error)
	OnUserEvent(ctx *HandlerContext, event any)
}

// NopHandler forwards every event to the next handler unchanged. Embed it
// in a concrete handler and override only the roles that handler needs
// (spec: "each with any subset of these roles").
type NopHandler struct {
	HandlerName string
}

func (h *NopHandler) Name() string { return h.HandlerName }

func (h *NopHandler) OnChannelActive(ctx *HandlerContext) { ctx.FireChannelActive() }

func (h *NopHandler) OnRead(ctx *HandlerContext, msg any) { ctx.FireRead(msg) }

func (h *NopHandler) OnWrite(ctx *HandlerContext, msg any, promise *Promise[struct{}]) {
	ctx.Write(msg, promise)
}

func (h *NopHandler) OnFlush(ctx *HandlerContext) { ctx.Flush() }

func (h *NopHandler) OnError(ctx *HandlerContext, err error) { ctx.FireError(err) }

func (h *NopHandler) OnUserEvent(ctx *HandlerContext, event any) { ctx.FireUserEvent(event) }

// HandlerContext is a handler's view of its position in the chain: it
// knows how to forward an event to its inbound or outbound neighbour
// without knowing anything else about the chain's shape.
type HandlerContext struct {
	channel *Channel
	index   int
}

// Channel returns the owning channel.
func (c *HandlerContext) Channel() *Channel { return c.channel }

// FireChannelActive forwards channel-active toward the application.
func (c *HandlerContext) FireChannelActive() { c.channel.invokeActive(c.index + 1) }

// FireRead forwards an inbound message toward the application.
func (c *HandlerContext) FireRead(msg any) { c.channel.invokeRead(c.index+1, msg) }

// FireError forwards an error toward the application.
func (c *HandlerContext) FireError(err error) { c.channel.invokeError(c.index+1, err) }

// FireUserEvent forwards a user event toward the application.
func (c *HandlerContext) FireUserEvent(event any) { c.channel.invokeUserEvent(c.index+1, event) }

// Write forwards an outbound message toward the transport.
func (c *HandlerContext) Write(msg any, promise *Promise[struct{}]) {
	c.channel.invokeWrite(c.index-1, msg, promise)
}

// Flush forwards a flush request toward the transport.
func (c *HandlerContext) Flush() { c.channel.invokeFlush(c.index - 1) }

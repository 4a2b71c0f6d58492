package nfs3server

import (
	"context"
	"fmt"
	"time"

	"github.com/marmos91/netproto/pkg/metrics"
	"github.com/marmos91/netproto/pkg/mount"
	"github.com/marmos91/netproto/pkg/nfs3"
	"github.com/marmos91/netproto/pkg/pipeline"
	"github.com/marmos91/netproto/pkg/rpc"
)

// DispatchHandler is the per-connection NFS3/MOUNT server handler (spec
// §4.G). It decodes one RPC call per inbound message, dispatches it to a
// Filesystem method, and writes the encoded reply back once the method's
// promise resolves.
type DispatchHandler struct {
	pipeline.NopHandler
	fs     Filesystem
	ctx    context.Context
	cancel context.CancelFunc

	// Metrics is optional; a nil value disables all recording.
	Metrics metrics.Metrics
}

// NewDispatchHandler returns a handler bound to fs, ready to AddLast onto
// a Channel whose pipeline already decodes record-marked RPC messages
// (e.g. via a rpc.Framer-backed pipeline.FrameDecoderHandler).
func NewDispatchHandler(fs Filesystem) *DispatchHandler {
	return &DispatchHandler{
		NopHandler: pipeline.NopHandler{HandlerName: "nfs3-dispatch"},
		fs:         fs,
		Metrics:    metrics.Noop{},
	}
}

func (h *DispatchHandler) OnChannelActive(ctx *pipeline.HandlerContext) {
	h.ctx, h.cancel = context.WithCancel(context.Background())
	if h.Metrics == nil {
		h.Metrics = metrics.Noop{}
	}
	h.Metrics.RecordChannelOpened()
	ch := ctx.Channel()
	go func() {
		<-ch.Done()
		h.cancel()
		h.Metrics.RecordChannelClosed()
		h.fs.Shutdown(pipeline.NewPromise[struct{}]())
	}()
	ctx.FireChannelActive()
}

// OnRead decodes one RPC call per NFS3/MOUNT record-marked message the
// upstream framing handler delivers. A decode failure here is a fatal,
// connection-closing condition (spec §4.G); an unsupported procedure or a
// procedure-body decode failure instead produces a well-formed reply
// (PROC_UNAVAIL / GARBAGE_ARGS) and the connection stays open.
func (h *DispatchHandler) OnRead(ctx *pipeline.HandlerContext, msg any) {
	payload, ok := msg.([]byte)
	if !ok {
		err := fmt.Errorf("nfs3server: non-[]byte message %T reached dispatch", msg)
		ctx.FireError(err)
		ctx.Channel().Close(err)
		return
	}
	call, err := rpc.DecodeCall(payload)
	if err != nil {
		ctx.FireError(err)
		ctx.Channel().Close(err)
		return
	}
	h.dispatch(ctx, call)
}

func (h *DispatchHandler) dispatch(ctx *pipeline.HandlerContext, call *rpc.CallMessage) {
	switch call.Call.Program {
	case nfs3.Program:
		if call.Call.ProgramVersion != nfs3.ProgramVersion {
			h.recordCall("nfs3", "prog_mismatch", 0, rpc.AcceptProgMismatch)
			h.writeReply(ctx, rpc.EncodeProgMismatch(call.XID, nfs3.ProgramVersion, nfs3.ProgramVersion))
			return
		}
		h.dispatchNFS(ctx, call)
	case mount.Program:
		if call.Call.ProgramVersion != mount.ProgramVersion {
			h.recordCall("mount", "prog_mismatch", 0, rpc.AcceptProgMismatch)
			h.writeReply(ctx, rpc.EncodeProgMismatch(call.XID, mount.ProgramVersion, mount.ProgramVersion))
			return
		}
		h.dispatchMount(ctx, call)
	default:
		h.recordCall("unknown", "prog_unavail", 0, rpc.AcceptProgUnavail)
		h.writeReply(ctx, rpc.EncodeAcceptedFailure(call.XID, rpc.AcceptProgUnavail))
	}
}

// recordCall reports one dispatched call's outcome through h.Metrics.
func (h *DispatchHandler) recordCall(program, procedure string, duration time.Duration, acceptStat uint32) {
	h.Metrics.RecordRPCCall(program, procedure, duration, acceptStat)
}

func (h *DispatchHandler) dispatchNFS(ctx *pipeline.HandlerContext, call *rpc.CallMessage) {
	switch call.Call.Procedure {
	case nfs3.ProcNull:
		h.writeReply(ctx, rpc.EncodeAcceptedSuccess(call.XID, nil))
	case nfs3.ProcGetAttr:
		dispatchTyped(h, ctx, call, "getattr", nfs3.DecodeGetAttrCall, h.fs.GetAttr, nfs3.EncodeGetAttrReply)
	case nfs3.ProcSetAttr:
		dispatchTyped(h, ctx, call, "setattr", nfs3.DecodeSetAttrCall, h.fs.SetAttr, nfs3.EncodeSetAttrReply)
	case nfs3.ProcLookup:
		dispatchTyped(h, ctx, call, "lookup", nfs3.DecodeLookupCall, h.fs.Lookup, nfs3.EncodeLookupReply)
	case nfs3.ProcAccess:
		dispatchTyped(h, ctx, call, "access", nfs3.DecodeAccessCall, h.fs.Access, nfs3.EncodeAccessReply)
	case nfs3.ProcReadlink:
		dispatchTyped(h, ctx, call, "readlink", nfs3.DecodeReadlinkCall, h.fs.Readlink, nfs3.EncodeReadlinkReply)
	case nfs3.ProcRead:
		dispatchRead(h, ctx, call)
	case nfs3.ProcReaddir:
		dispatchTyped(h, ctx, call, "readdir", nfs3.DecodeReaddirCall, h.fs.Readdir, nfs3.EncodeReaddirReply)
	case nfs3.ProcReaddirPlus:
		dispatchTyped(h, ctx, call, "readdirplus", nfs3.DecodeReaddirPlusCall, h.fs.ReaddirPlus, nfs3.EncodeReaddirPlusReply)
	case nfs3.ProcFsStat:
		dispatchTyped(h, ctx, call, "fsstat", nfs3.DecodeFsStatCall, h.fs.FsStat, nfs3.EncodeFsStatReply)
	case nfs3.ProcFsInfo:
		dispatchTyped(h, ctx, call, "fsinfo", nfs3.DecodeFsInfoCall, h.fs.FsInfo, nfs3.EncodeFsInfoReply)
	case nfs3.ProcPathconf:
		dispatchTyped(h, ctx, call, "pathconf", nfs3.DecodePathconfCall, h.fs.Pathconf, nfs3.EncodePathconfReply)
	default:
		h.recordCall("nfs3", "unknown", 0, rpc.AcceptProcUnavail)
		h.writeReply(ctx, rpc.EncodeAcceptedFailure(call.XID, rpc.AcceptProcUnavail))
	}
}

func (h *DispatchHandler) dispatchMount(ctx *pipeline.HandlerContext, call *rpc.CallMessage) {
	switch call.Call.Procedure {
	case mount.ProcNull:
		h.writeReply(ctx, rpc.EncodeAcceptedSuccess(call.XID, nil))
	case mount.ProcMount:
		dispatchTyped(h, ctx, call, "mount", mount.DecodeMountCall, h.fs.Mount, mount.EncodeMountReply)
	case mount.ProcUnmount:
		dispatchTyped(h, ctx, call, "unmount", mount.DecodeUnmountCall, h.fs.Unmount, mount.EncodeUnmountReply)
	default:
		h.recordCall("mount", "unknown", 0, rpc.AcceptProcUnavail)
		h.writeReply(ctx, rpc.EncodeAcceptedFailure(call.XID, rpc.AcceptProcUnavail))
	}
}

// writeReply frames a complete already-encoded RPC reply and writes it to
// the transport in a single shot.
func (h *DispatchHandler) writeReply(ctx *pipeline.HandlerContext, reply []byte) {
	ch := ctx.Channel()
	ch.WriteAndFlush(rpc.EncodeMessage(reply), pipeline.NewPromise[struct{}]())
}

// dispatchTyped decodes a procedure's arguments, invokes the matching
// Filesystem method with a fresh promise, and — once that promise
// resolves, possibly from another goroutine entirely — hops back onto the
// channel's loop to encode and write the reply, per spec §5's rule that a
// promise always completes on its owning loop.
func dispatchTyped[C any, R any](
	h *DispatchHandler,
	ctx *pipeline.HandlerContext,
	call *rpc.CallMessage,
	procedure string,
	decode func([]byte) (C, error),
	invoke func(context.Context, C, *pipeline.Promise[R]),
	encode func(R) []byte,
) {
	program := programName(call.Call.Program)
	start := time.Now()
	args, err := decode(call.Args)
	if err != nil {
		h.recordCall(program, procedure, time.Since(start), rpc.AcceptGarbageArgs)
		h.writeReply(ctx, rpc.EncodeAcceptedFailure(call.XID, rpc.AcceptGarbageArgs))
		return
	}
	promise := pipeline.NewPromise[R]()
	invoke(h.ctx, args, promise)

	ch := ctx.Channel()
	go func() {
		reply, err := promise.Result()
		ch.Execute(func() {
			if err != nil {
				h.recordCall(program, procedure, time.Since(start), rpc.AcceptSystemErr)
				h.writeReply(ctx, rpc.EncodeAcceptedFailure(call.XID, rpc.AcceptSystemErr))
				return
			}
			h.recordCall(program, procedure, time.Since(start), rpc.AcceptSuccess)
			h.writeReply(ctx, rpc.EncodeAcceptedSuccess(call.XID, encode(reply)))
		})
	}()
}

// programName maps an RPC program number to the short name used in
// metric labels.
func programName(program uint32) string {
	switch program {
	case nfs3.Program:
		return "nfs3"
	case mount.Program:
		return "mount"
	default:
		return "unknown"
	}
}

// dispatchRead is dispatchTyped specialized for READ, whose reply uses the
// zero-copy partial-write protocol (spec §4.F) instead of a single encoded
// buffer.
func dispatchRead(h *DispatchHandler, ctx *pipeline.HandlerContext, call *rpc.CallMessage) {
	start := time.Now()
	args, err := nfs3.DecodeReadCall(call.Args)
	if err != nil {
		h.recordCall("nfs3", "read", time.Since(start), rpc.AcceptGarbageArgs)
		h.writeReply(ctx, rpc.EncodeAcceptedFailure(call.XID, rpc.AcceptGarbageArgs))
		return
	}
	promise := pipeline.NewPromise[nfs3.ReadReply]()
	h.fs.Read(h.ctx, args, promise)

	ch := ctx.Channel()
	go func() {
		reply, err := promise.Result()
		ch.Execute(func() {
			if err != nil {
				h.recordCall("nfs3", "read", time.Since(start), rpc.AcceptSystemErr)
				h.writeReply(ctx, rpc.EncodeAcceptedFailure(call.XID, rpc.AcceptSystemErr))
				return
			}
			h.recordCall("nfs3", "read", time.Since(start), rpc.AcceptSuccess)
			h.Metrics.RecordBytesTransferred("read", "read", uint64(len(reply.Data)))
			nfsHeader, next := nfs3.EncodeReadReply(reply)
			rpcHeader := rpc.EncodeAcceptedSuccess(call.XID, nfsHeader)

			if !next.HasPayload {
				ch.WriteAndFlush(rpc.EncodeMessage(rpcHeader), pipeline.NewPromise[struct{}]())
				return
			}

			total := len(rpcHeader) + len(next.Payload) + next.FillBytes
			frag := rpc.EncodeFragmentHeader(uint32(total))
			framedHeader := append(append([]byte(nil), frag[:]...), rpcHeader...)

			ch.Write(framedHeader, pipeline.NewPromise[struct{}]())
			ch.Write(next.Payload, pipeline.NewPromise[struct{}]())
			if next.FillBytes > 0 {
				ch.Write(make([]byte, next.FillBytes), pipeline.NewPromise[struct{}]())
			}
			ch.Flush()
		})
	}()
}

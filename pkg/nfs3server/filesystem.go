package nfs3server

import (
	"context"

	"github.com/marmos91/netproto/pkg/mount"
	"github.com/marmos91/netproto/pkg/nfs3"
	"github.com/marmos91/netproto/pkg/pipeline"
)

// Filesystem is the pluggable NFS3/MOUNT server backend (spec §6.5). Each
// method MUST eventually complete its promise — synchronously for an
// in-memory backend, or later from any goroutine for one backed by real
// I/O. The dispatcher waits for the result off the loop and hops back onto
// the channel's event loop (Channel.Execute) to encode and write the reply.
// No method may block the calling goroutine.
type Filesystem interface {
	Mount(ctx context.Context, call mount.MountCall, promise *pipeline.Promise[mount.MountReply])
	Unmount(ctx context.Context, call mount.UnmountCall, promise *pipeline.Promise[mount.UnmountReply])

	GetAttr(ctx context.Context, call nfs3.GetAttrCall, promise *pipeline.Promise[nfs3.GetAttrReply])
	SetAttr(ctx context.Context, call nfs3.SetAttrCall, promise *pipeline.Promise[nfs3.SetAttrReply])
	Lookup(ctx context.Context, call nfs3.LookupCall, promise *pipeline.Promise[nfs3.LookupReply])
	Access(ctx context.Context, call nfs3.AccessCall, promise *pipeline.Promise[nfs3.AccessReply])
	Readlink(ctx context.Context, call nfs3.ReadlinkCall, promise *pipeline.Promise[nfs3.ReadlinkReply])
	Read(ctx context.Context, call nfs3.ReadCall, promise *pipeline.Promise[nfs3.ReadReply])
	Readdir(ctx context.Context, call nfs3.ReaddirCall, promise *pipeline.Promise[nfs3.ReaddirReply])
	ReaddirPlus(ctx context.Context, call nfs3.ReaddirPlusCall, promise *pipeline.Promise[nfs3.ReaddirPlusReply])
	FsStat(ctx context.Context, call nfs3.FsStatCall, promise *pipeline.Promise[nfs3.FsStatReply])
	FsInfo(ctx context.Context, call nfs3.FsInfoCall, promise *pipeline.Promise[nfs3.FsInfoReply])
	Pathconf(ctx context.Context, call nfs3.PathconfCall, promise *pipeline.Promise[nfs3.PathconfReply])

	// Shutdown signals the backend that no further calls will arrive on
	// this connection; it completes the promise once any in-flight work
	// it owns has drained.
	Shutdown(promise *pipeline.Promise[struct{}])
}

// ReaddirFromPlus adapts a Filesystem that only implements ReaddirPlus
// into a Readdir response, projecting away the per-entry attributes and
// handles (spec §4.G back-compat adapter). Backends that have a cheaper
// native READDIR should implement Readdir directly instead of calling
// this from within Filesystem.Readdir.
func ReaddirFromPlus(plus nfs3.ReaddirPlusReply) nfs3.ReaddirReply {
	entries := make([]nfs3.DirEntry, len(plus.Entries))
	for i, e := range plus.Entries {
		entries[i] = nfs3.DirEntry{FileID: e.FileID, Name: e.Name, Cookie: e.Cookie}
	}
	return nfs3.ReaddirReply{
		Status:     plus.Status,
		Attr:       plus.Attr,
		CookieVerf: plus.CookieVerf,
		Entries:    entries,
		EOF:        plus.EOF,
	}
}

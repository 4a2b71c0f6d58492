package nfs3server

import (
	"github.com/marmos91/netproto/pkg/pipeline"
	"github.com/marmos91/netproto/pkg/rpc"
)

// InstallServer attaches the record-marking decoder and the NFS3/MOUNT
// dispatcher to ch (spec §6.5's install_nfs_server). maxFragmentSize of 0
// selects rpc.DefaultMaxFragmentSize.
func InstallServer(ch *pipeline.Channel, fs Filesystem, maxFragmentSize uint32) {
	framer := &rpc.Framer{MaxFragmentSize: maxFragmentSize}
	ch.AddLast("rpc-framer", pipeline.NewFrameDecoderHandler("rpc-framer", framer))
	ch.AddLast("nfs3-dispatch", NewDispatchHandler(fs))
}

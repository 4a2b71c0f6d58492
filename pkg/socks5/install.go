package socks5

import "github.com/marmos91/netproto/pkg/pipeline"

// InstallClient attaches a SOCKSv5 client handshake handler to ch (spec
// §6.5's install_socks_client). It returns the handler so the caller can
// observe state after wiring it in, though most callers only need to
// start writing application bytes once the channel settles into Active.
func InstallClient(ch *pipeline.Channel, target Address, delegate AuthenticationDelegate) (*ClientHandler, error) {
	h, err := NewClientHandler("socks5-client", target, delegate)
	if err != nil {
		return nil, err
	}
	ch.AddLast(h.Name(), h)
	return h, nil
}

// InstallServer attaches a SOCKSv5 server handshake handler to ch.
func InstallServer(ch *pipeline.Channel, delegate AuthenticationDelegate, connector Connector) *ServerHandler {
	h := NewServerHandler("socks5-server", delegate, connector)
	ch.AddLast(h.Name(), h)
	return h
}

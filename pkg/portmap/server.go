package portmap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/marmos91/netproto/pkg/bufpool"
	"github.com/marmos91/netproto/pkg/metrics"
	"github.com/marmos91/netproto/pkg/rpc"
)

// maxFragmentSize bounds a single TCP fragment's declared payload length.
// Portmap messages are tiny; 64KB is generous headroom over the largest
// legal DUMP reply on any real deployment.
const maxFragmentSize = 1 << 16

// ServerConfig configures a Server.
type ServerConfig struct {
	// Port is the TCP and UDP port to listen on (111 by convention, RFC
	// 1833 §3).
	Port int
	// Registry backs every SET/UNSET/GETPORT/DUMP request.
	Registry *Registry
	Logger   *slog.Logger
	// Metrics is optional; nil disables recording.
	Metrics metrics.Metrics
}

// Server is a portmap v2 server reachable over both TCP (RPC record
// marking) and UDP (one packet, one message, no framing).
type Server struct {
	config       ServerConfig
	log          *slog.Logger
	tcpListener  net.Listener
	udpConn      *net.UDPConn
	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewServer returns a Server bound to cfg. Serve must be called to start
// listening.
func NewServer(cfg ServerConfig) *Server {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Noop{}
	}
	return &Server{config: cfg, log: log, shutdown: make(chan struct{})}
}

// Serve opens the TCP listener and UDP socket and blocks until ctx is
// cancelled or Stop is called.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	tcpListener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("portmap: listen tcp %s: %w", addr, err)
	}
	s.tcpListener = tcpListener

	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		_ = s.tcpListener.Close()
		return fmt.Errorf("portmap: resolve udp %s: %w", addr, err)
	}
	udpConn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		_ = s.tcpListener.Close()
		return fmt.Errorf("portmap: listen udp %s: %w", addr, err)
	}
	s.udpConn = udpConn

	s.log.Info("portmap server listening", "addr", addr)

	s.wg.Add(2)
	go s.serveTCP()
	go s.serveUDP()

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.shutdown:
		}
	}()

	s.wg.Wait()
	return nil
}

func (s *Server) serveTCP() {
	defer s.wg.Done()
	for {
		conn, err := s.tcpListener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				s.log.Debug("portmap tcp accept error", "error", err)
				return
			}
		}
		s.wg.Add(1)
		go func(c net.Conn) {
			defer s.wg.Done()
			s.handleTCPConn(c)
		}(conn)
	}
}

func (s *Server) handleTCPConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	clientAddr := conn.RemoteAddr().String()

	if err := conn.SetDeadline(time.Now().Add(5 * time.Second)); err != nil {
		s.log.Debug("portmap set deadline failed", "client", clientAddr, "error", err)
		return
	}

	var hdrBuf [4]byte
	if _, err := io.ReadFull(conn, hdrBuf[:]); err != nil {
		if err != io.EOF {
			s.log.Debug("portmap read fragment header failed", "client", clientAddr, "error", err)
		}
		return
	}
	hdr, err := rpc.DecodeFragmentHeader(hdrBuf, maxFragmentSize)
	if err != nil {
		s.log.Warn("portmap bad fragment header", "client", clientAddr, "error", err)
		return
	}

	msgBuf := bufpool.Get(int(hdr.Length))
	defer bufpool.Put(msgBuf)
	if _, err := io.ReadFull(conn, msgBuf); err != nil {
		s.log.Debug("portmap read message failed", "client", clientAddr, "error", err)
		return
	}

	replyBody := s.processMessage(msgBuf, clientAddr)
	if replyBody == nil {
		return
	}

	if _, err := conn.Write(rpc.EncodeMessage(replyBody)); err != nil {
		s.log.Debug("portmap write tcp reply failed", "client", clientAddr, "error", err)
	}
}

func (s *Server) serveUDP() {
	defer s.wg.Done()
	buf := make([]byte, 65535)

	for {
		select {
		case <-s.shutdown:
			return
		default:
		}

		if err := s.udpConn.SetReadDeadline(time.Now().Add(500 * time.Millisecond)); err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				s.log.Debug("portmap set udp deadline failed", "error", err)
				continue
			}
		}

		n, clientAddr, err := s.udpConn.ReadFromUDP(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			select {
			case <-s.shutdown:
				return
			default:
				s.log.Debug("portmap udp read error", "error", err)
				continue
			}
		}

		msgBuf := bufpool.Get(n)
		copy(msgBuf, buf[:n])
		clientStr := clientAddr.String()

		replyBody := s.processMessage(msgBuf, clientStr)
		bufpool.Put(msgBuf)
		if replyBody == nil {
			continue
		}
		if _, err := s.udpConn.WriteToUDP(replyBody, clientAddr); err != nil {
			s.log.Debug("portmap write udp reply failed", "client", clientStr, "error", err)
		}
	}
}

// processMessage decodes one already-unframed RPC call, dispatches it, and
// returns the unframed reply body. The caller adds (TCP) or omits (UDP)
// record marking.
func (s *Server) processMessage(data []byte, clientAddr string) []byte {
	start := time.Now()
	call, err := rpc.DecodeCall(data)
	if err != nil {
		s.log.Debug("portmap decode call failed", "client", clientAddr, "error", err)
		return nil
	}

	if call.Call.Program != Program {
		s.config.Metrics.RecordRPCCall("portmap", "unknown", time.Since(start), rpc.AcceptProgUnavail)
		return rpc.EncodeAcceptedFailure(call.XID, rpc.AcceptProgUnavail)
	}
	if call.Call.ProgramVersion != ProgramVersion {
		s.config.Metrics.RecordRPCCall("portmap", "unknown", time.Since(start), rpc.AcceptProgMismatch)
		return rpc.EncodeProgMismatch(call.XID, ProgramVersion, ProgramVersion)
	}

	results, status := s.invoke(call.Call.Procedure, call.Args)
	s.config.Metrics.RecordRPCCall("portmap", procedureName(call.Call.Procedure), time.Since(start), status)
	if status != rpc.AcceptSuccess {
		return rpc.EncodeAcceptedFailure(call.XID, status)
	}
	return rpc.EncodeAcceptedSuccess(call.XID, results)
}

// procedureName maps a portmap procedure number to its metric label.
func procedureName(procedure uint32) string {
	switch procedure {
	case ProcNull:
		return "null"
	case ProcSet:
		return "set"
	case ProcUnset:
		return "unset"
	case ProcGetPort:
		return "getport"
	case ProcDump:
		return "dump"
	default:
		return "unknown"
	}
}

// invoke runs one procedure against the registry, returning either an
// encoded result and AcceptSuccess, or nil and the accept_stat to report.
func (s *Server) invoke(procedure uint32, args []byte) ([]byte, uint32) {
	switch procedure {
	case ProcNull:
		return nil, rpc.AcceptSuccess

	case ProcSet:
		m, err := DecodeMapping(args)
		if err != nil {
			return nil, rpc.AcceptGarbageArgs
		}
		return EncodeBoolReply(s.config.Registry.Set(m)), rpc.AcceptSuccess

	case ProcUnset:
		m, err := DecodeMapping(args)
		if err != nil {
			return nil, rpc.AcceptGarbageArgs
		}
		ok := s.config.Registry.Unset(m.Program, m.Version, m.Protocol)
		return EncodeBoolReply(ok), rpc.AcceptSuccess

	case ProcGetPort:
		m, err := DecodeMapping(args)
		if err != nil {
			return nil, rpc.AcceptGarbageArgs
		}
		port, ok := s.config.Registry.GetPort(m.Program, m.Version, m.Protocol)
		s.config.Metrics.RecordPortmapLookup(m.Program, ok)
		return EncodePortReply(port), rpc.AcceptSuccess

	case ProcDump:
		return EncodeDumpReply(s.config.Registry.Dump()), rpc.AcceptSuccess

	default:
		// CALLIT(5) and anything beyond it are intentionally unsupported:
		// forwarding arbitrary calls through the portmapper is a known
		// amplification vector and no NFS/MOUNT client needs it.
		return nil, rpc.AcceptProcUnavail
	}
}

// Stop closes both listeners and unblocks Serve. Safe to call more than
// once and from any goroutine.
func (s *Server) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.shutdown)
		if s.tcpListener != nil {
			_ = s.tcpListener.Close()
		}
		if s.udpConn != nil {
			_ = s.udpConn.Close()
		}
	})
}

// Addr returns the TCP listener's address, or "" if not yet listening.
func (s *Server) Addr() string {
	if s.tcpListener != nil {
		return s.tcpListener.Addr().String()
	}
	return ""
}

// UDPAddr returns the UDP socket's address, or "" if not yet listening.
func (s *Server) UDPAddr() string {
	if s.udpConn != nil {
		return s.udpConn.LocalAddr().String()
	}
	return ""
}

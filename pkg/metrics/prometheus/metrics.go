// Package prometheus implements metrics.Metrics on top of a
// prometheus.Registry, following the same promauto-wired, nil-receiver
// pattern as the cache and S3 metrics packages it's grounded on.
package prometheus

import (
	"time"

	"github.com/marmos91/netproto/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "netproto"

type protocolMetrics struct {
	rpcCallDuration   *prometheus.HistogramVec
	rpcAcceptStat     *prometheus.CounterVec
	nfsStatus         *prometheus.CounterVec
	bytesTransferred  *prometheus.CounterVec
	activeChannels    prometheus.Gauge
	channelsOpened    prometheus.Counter
	channelsClosed    prometheus.Counter
	portmapLookups    *prometheus.CounterVec
	socksHandshakes   *prometheus.CounterVec
	socksHandshakeDur *prometheus.HistogramVec
}

// NewMetrics returns a metrics.Metrics registered on metrics.GetRegistry(),
// or nil if metrics collection is disabled (metrics.IsEnabled returns
// false). The nil result is an untyped nil interface, not a nil
// *protocolMetrics; callers pass it straight through wherever a
// metrics.Metrics is accepted, and the consumers in this module treat a
// nil Metrics as disabled.
func NewMetrics() metrics.Metrics {
	if !metrics.IsEnabled() {
		return nil
	}
	reg := metrics.GetRegistry()
	m := &protocolMetrics{
		rpcCallDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "call_duration_seconds",
			Help:      "Duration of dispatched RPC calls from decode to reply, by program and procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"program", "procedure"}),
		rpcAcceptStat: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "calls_total",
			Help:      "RPC calls dispatched, by program, procedure, and accept_stat.",
		}, []string{"program", "procedure", "accept_stat"}),
		nfsStatus: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "nfs3",
			Name:      "status_total",
			Help:      "NFS3 procedure replies, by procedure and nfsstat3.",
		}, []string{"procedure", "status"}),
		bytesTransferred: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "nfs3",
			Name:      "bytes_transferred_total",
			Help:      "Payload bytes moved by NFS3 procedures, by procedure and direction.",
		}, []string{"procedure", "direction"}),
		activeChannels: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "active_channels",
			Help:      "Currently open connection channels.",
		}),
		channelsOpened: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "channels_opened_total",
			Help:      "Connection channels accepted.",
		}),
		channelsClosed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "channels_closed_total",
			Help:      "Connection channels closed.",
		}),
		portmapLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "portmap",
			Name:      "lookups_total",
			Help:      "GETPORT lookups, by program and hit/miss.",
		}, []string{"program", "result"}),
		socksHandshakes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "socks5",
			Name:      "handshakes_total",
			Help:      "SOCKSv5 handshakes attempted, by role and outcome.",
		}, []string{"role", "outcome"}),
		socksHandshakeDur: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "socks5",
			Name:      "handshake_duration_seconds",
			Help:      "SOCKSv5 handshake duration, by role.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"role"}),
	}
	return m
}

func (m *protocolMetrics) RecordRPCCall(program, procedure string, duration time.Duration, acceptStat uint32) {
	if m == nil {
		return
	}
	m.rpcCallDuration.WithLabelValues(program, procedure).Observe(duration.Seconds())
	m.rpcAcceptStat.WithLabelValues(program, procedure, acceptStatLabel(acceptStat)).Inc()
}

func (m *protocolMetrics) RecordNFSStatus(procedure string, status uint32) {
	if m == nil {
		return
	}
	m.nfsStatus.WithLabelValues(procedure, nfsStatusLabel(status)).Inc()
}

func (m *protocolMetrics) RecordBytesTransferred(procedure string, direction string, bytes uint64) {
	if m == nil {
		return
	}
	m.bytesTransferred.WithLabelValues(procedure, direction).Add(float64(bytes))
}

func (m *protocolMetrics) SetActiveChannels(count int32) {
	if m == nil {
		return
	}
	m.activeChannels.Set(float64(count))
}

func (m *protocolMetrics) RecordChannelOpened() {
	if m == nil {
		return
	}
	m.channelsOpened.Inc()
}

func (m *protocolMetrics) RecordChannelClosed() {
	if m == nil {
		return
	}
	m.channelsClosed.Inc()
}

func (m *protocolMetrics) RecordPortmapLookup(program uint32, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.portmapLookups.WithLabelValues(programLabel(program), result).Inc()
}

func (m *protocolMetrics) RecordSocksHandshake(role string, duration time.Duration, succeeded bool) {
	if m == nil {
		return
	}
	outcome := "failed"
	if succeeded {
		outcome = "succeeded"
	}
	m.socksHandshakes.WithLabelValues(role, outcome).Inc()
	m.socksHandshakeDur.WithLabelValues(role).Observe(duration.Seconds())
}

func acceptStatLabel(stat uint32) string {
	switch stat {
	case 0:
		return "success"
	case 1:
		return "prog_unavail"
	case 2:
		return "prog_mismatch"
	case 3:
		return "proc_unavail"
	case 4:
		return "garbage_args"
	case 5:
		return "system_err"
	default:
		return "unknown"
	}
}

func nfsStatusLabel(status uint32) string {
	if status == 0 {
		return "ok"
	}
	return "error"
}

func programLabel(program uint32) string {
	switch program {
	case 100003:
		return "nfs"
	case 100005:
		return "mount"
	case 100000:
		return "portmap"
	default:
		return "other"
	}
}

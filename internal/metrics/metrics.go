// Package metrics exposes Prometheus counters for the connection and an
// optional HTTP listener serving them.
package metrics

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PacketsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minecraftbot_packets_received_total",
		Help: "Server packets received, by connection state.",
	}, []string{"state"})

	UnknownPackets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minecraftbot_unknown_packets_total",
		Help: "Packets with no registered handler, drained and skipped.",
	})

	MalformedPackets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minecraftbot_malformed_packets_total",
		Help: "Packets whose payload failed to decode.",
	})

	FramesQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minecraftbot_tick_frames_queued_total",
		Help: "Movement frames queued by the tick loop.",
	})

	ChunksLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minecraftbot_chunks_loaded",
		Help: "Chunk columns currently held in memory.",
	})

	EntitiesTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minecraftbot_entities_tracked",
		Help: "Entities currently tracked.",
	})
)

// Serve runs the metrics endpoint on addr until the server fails. Meant to be
// launched on its own goroutine; a closed listener is not an error.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", "error", err)
	}
}

// Package observability exposes decoding metrics and progress reports.
package observability

import (
	"net/http"
	"time"

	"github.com/chaisql/locationhistory/decode"
	"github.com/chaisql/locationhistory/protocol"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Metrics groups the decoding collectors.
type Metrics struct {
	EntriesDecoded *prometheus.CounterVec
	DecodeErrors   *prometheus.CounterVec
	InputBytes     prometheus.Counter
	DecodeDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	m := Metrics{
		EntriesDecoded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "timeline_entries_decoded_total",
			Help: "Location entries decoded, by positioning source",
		}, []string{"source"}),
		DecodeErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "timeline_decode_errors_total",
			Help: "Decodings that failed, by error kind",
		}, []string{"kind"}),
		InputBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "timeline_input_bytes_total",
			Help: "Bytes read from inputs, before decompression",
		}),
		DecodeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "timeline_decode_duration_seconds",
			Help:    "Time spent decoding a whole input",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}

	// expose every source even before the first entry
	for _, s := range protocol.Sources() {
		m.EntriesDecoded.WithLabelValues(s.String())
	}

	return &m
}

// ObserveEntry counts a decoded entry.
func (m *Metrics) ObserveEntry(e *protocol.Entry) {
	m.EntriesDecoded.WithLabelValues(e.Source.String()).Inc()
}

// ObserveError counts a failed decoding. Errors not raised by the decoder
// are counted as "other".
func (m *Metrics) ObserveError(err error) {
	kind := "other"
	if k := decode.KindOf(err); k != 0 {
		kind = k.String()
	}
	m.DecodeErrors.WithLabelValues(kind).Inc()
}

// Handler serves /metrics for g and /healthz.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// StartMetricsServer serves Handler on addr, in the background. Stop it with
// Shutdown.
func StartMetricsServer(addr string, g prometheus.Gatherer) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(g),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()

	log.Info().Str("addr", addr).Msg("serving metrics")
	return srv
}

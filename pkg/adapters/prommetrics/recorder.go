// Package prommetrics records run counters in a private Prometheus registry
// and writes them in the node-exporter textfile format on Flush.
package prommetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/user/flowclip/pkg/ports"
)

const namespace = "flowclip"

// Recorder implements ports.MetricsRecorder.
type Recorder struct {
	path     string
	registry *prometheus.Registry

	sources *prometheus.CounterVec
	clips   *prometheus.CounterVec
	decoded prometheus.Counter
	padded  prometheus.Counter
}

// New creates a recorder that flushes to path. An empty path disables Flush.
func New(path string) *Recorder {
	r := &Recorder{
		path:     path,
		registry: prometheus.NewRegistry(),
	}

	r.sources = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sources_total",
			Help:      "Sources processed, by kind and status",
		},
		[]string{"kind", "status"},
	)
	r.clips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clips_written_total",
			Help:      "Clips written, by stream",
		},
		[]string{"stream"},
	)
	r.decoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_decoded_total",
		Help:      "Frames decoded from all sources",
	})
	r.padded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "padded_frames_total",
		Help:      "Frames reused by backward padding",
	})

	r.registry.MustRegister(r.sources, r.clips, r.decoded, r.padded)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) SourceFinished(kind, status string) {
	r.sources.WithLabelValues(kind, status).Inc()
}

func (r *Recorder) ClipWritten(stream string) {
	r.clips.WithLabelValues(stream).Inc()
}

func (r *Recorder) FramesDecoded(n int) {
	if n > 0 {
		r.decoded.Add(float64(n))
	}
}

func (r *Recorder) FramesPadded(n int) {
	if n > 0 {
		r.padded.Add(float64(n))
	}
}

// Flush writes all metrics to the textfile path.
func (r *Recorder) Flush() error {
	if r.path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(r.path, r.registry)
}

var _ ports.MetricsRecorder = (*Recorder)(nil)

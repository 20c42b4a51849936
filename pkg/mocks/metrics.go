package mocks

import (
	"sync"

	"github.com/user/flowclip/pkg/ports"
)

// Metrics is a mock implementation of ports.MetricsRecorder.
type Metrics struct {
	mu sync.Mutex

	Sources  map[string]int // "kind/status" -> count
	Clips    map[string]int // stream -> count
	Decoded  int
	Padded   int
	Flushed  int
	FlushErr error
}

// NewMetrics creates an empty mock recorder.
func NewMetrics() *Metrics {
	return &Metrics{
		Sources: make(map[string]int),
		Clips:   make(map[string]int),
	}
}

func (m *Metrics) SourceFinished(kind, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sources[kind+"/"+status]++
}

func (m *Metrics) ClipWritten(stream string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clips[stream]++
}

func (m *Metrics) FramesDecoded(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Decoded += n
}

func (m *Metrics) FramesPadded(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Padded += n
}

func (m *Metrics) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushed++
	return m.FlushErr
}

var _ ports.MetricsRecorder = (*Metrics)(nil)

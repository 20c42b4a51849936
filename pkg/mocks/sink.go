package mocks

import (
	"image"
	"sync"

	"github.com/user/flowclip/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Plans  map[string][]byte
	Sheets map[string]map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Plans:   make(map[string][]byte),
		Sheets:  make(map[string]map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SavePlanJSON(stem string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Plans[stem] = data
	return nil
}

func (m *DebugSink) SaveContactSheet(stem string, index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Sheets[stem] == nil {
		m.Sheets[stem] = make(map[int]image.Image)
	}
	m.Sheets[stem][index] = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool { return false }

func (m *NullSink) SavePlanJSON(stem string, data []byte) error { return nil }

func (m *NullSink) SaveContactSheet(stem string, index int, img image.Image) error { return nil }

var _ ports.DebugSink = (*NullSink)(nil)

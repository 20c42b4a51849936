package mocks

import (
	"sync"

	"github.com/user/flowclip/pkg/ports"
)

// Progress is a mock implementation of ports.Progress.
type Progress struct {
	mu   sync.Mutex
	Bars []*ProgressBar
}

// ProgressBar records the steps reported for one bar.
type ProgressBar struct {
	Description string
	Total       int
	Count       int
	Finished    bool
}

func (m *Progress) Start(description string, total int) ports.ProgressBar {
	m.mu.Lock()
	defer m.mu.Unlock()
	bar := &ProgressBar{Description: description, Total: total}
	m.Bars = append(m.Bars, bar)
	return bar
}

func (b *ProgressBar) Add(n int) { b.Count += n }

func (b *ProgressBar) Finish() { b.Finished = true }

var (
	_ ports.Progress    = (*Progress)(nil)
	_ ports.ProgressBar = (*ProgressBar)(nil)
)

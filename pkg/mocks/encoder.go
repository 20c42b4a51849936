// Package mocks provides mock implementations for testing.
package mocks

import (
	"image"
	"sync"

	"github.com/user/flowclip/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	mu sync.Mutex

	BeginFunc       func(width, height int, fps float64, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img image.Image) error
	EndFunc         func() ([]byte, error)

	// Recorded calls for verification
	BeginCalls       []BeginCall
	EncodeFrameCalls []image.Image
	EndCalls         int
	AbortCalls       int
}

// BeginCall records a call to Begin.
type BeginCall struct {
	Width  int
	Height int
	FPS    float64
	Opts   ports.EncoderOptions
}

func (m *VideoEncoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	m.mu.Lock()
	m.BeginCalls = append(m.BeginCalls, BeginCall{Width: width, Height: height, FPS: fps, Opts: opts})
	m.mu.Unlock()
	if m.BeginFunc != nil {
		return m.BeginFunc(width, height, fps, opts)
	}
	return nil
}

func (m *VideoEncoder) EncodeFrame(img image.Image) error {
	m.mu.Lock()
	m.EncodeFrameCalls = append(m.EncodeFrameCalls, img)
	m.mu.Unlock()
	if m.EncodeFrameFunc != nil {
		return m.EncodeFrameFunc(img)
	}
	return nil
}

func (m *VideoEncoder) End() ([]byte, error) {
	m.mu.Lock()
	m.EndCalls++
	m.mu.Unlock()
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	// Return a minimal ftyp box
	return []byte{0x00, 0x00, 0x00, 0x08, 'f', 't', 'y', 'p'}, nil
}

func (m *VideoEncoder) Abort() {
	m.mu.Lock()
	m.AbortCalls++
	m.mu.Unlock()
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)

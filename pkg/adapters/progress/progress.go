// Package progress renders terminal progress bars with schollz/progressbar.
package progress

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/user/flowclip/pkg/ports"
)

// Bars implements ports.Progress by drawing to a writer.
type Bars struct {
	w io.Writer
}

// New returns progress bars on stderr when it is a terminal, otherwise a no-op.
func New() ports.Progress {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return NewNoop()
	}
	return NewWriter(os.Stderr)
}

// NewWriter returns progress bars that always draw to w.
func NewWriter(w io.Writer) *Bars {
	return &Bars{w: w}
}

// Start begins a new bar.
func (b *Bars) Start(description string, total int) ports.ProgressBar {
	return &bar{pb: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { io.WriteString(b.w, "\n") }),
	)}
}

type bar struct {
	pb *progressbar.ProgressBar
}

func (b *bar) Add(n int) { b.pb.Add(n) }

func (b *bar) Finish() { b.pb.Finish() }

// Noop implements ports.Progress without output.
type Noop struct{}

// NewNoop creates a progress reporter that draws nothing.
func NewNoop() *Noop {
	return &Noop{}
}

// Start returns a bar that ignores all updates.
func (n *Noop) Start(description string, total int) ports.ProgressBar {
	return noopBar{}
}

type noopBar struct{}

func (noopBar) Add(int) {}

func (noopBar) Finish() {}

var (
	_ ports.Progress = (*Bars)(nil)
	_ ports.Progress = (*Noop)(nil)
)

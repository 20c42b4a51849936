package summarizer

import (
	"errors"
	"testing"

	"github.com/user/flowclip/pkg/mocks"
)

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "report" }), fs)

	if err := w.Write("reports/run.md", NewSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile("reports/run.md")
	if !ok || string(data) != "report" {
		t.Errorf("unexpected file contents: %q", data)
	}
}

func TestWriter_Write_Error(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("read-only")
	}
	w := NewWriter(NewMarkdownFormatter(), fs)

	if err := w.Write("run.md", NewSummary()); err == nil {
		t.Error("expected write error")
	}
}

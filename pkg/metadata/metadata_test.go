package metadata

import (
	"errors"
	"strings"
	"testing"

	"github.com/user/flowclip/pkg/adapters/logger"
	"github.com/user/flowclip/pkg/mocks"
)

func newGenerator() (*Generator, *mocks.FileSystem) {
	fs := mocks.NewFileSystem()
	return New(fs, logger.NewNoop()), fs
}

func TestGenerate(t *testing.T) {
	g, fs := newGenerator()
	fs.WriteFile("data/track/b.mp4", []byte("v"))
	fs.WriteFile("data/track/a.mp4", []byte("v"))
	fs.WriteFile("data/track/c.PNG", []byte("v"))
	fs.WriteFile("data/track/notes.txt", []byte("skip"))
	fs.WriteFile("data/track/nested/d.mp4", []byte("skip"))
	fs.WriteFile("data/track/flow_line/a.mp4", []byte("v"))
	fs.WriteFile("data/track/flow_line/c.PNG", []byte("v"))

	result, err := g.Generate(Options{Base: "data", Folder: "track"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := []Row{
		{Video: "track/a.mp4", FlowLine: "track/flow_line/a.mp4", Prompt: "move"},
		{Video: "track/b.mp4", FlowLine: "", Prompt: "move"},
		{Video: "track/c.PNG", FlowLine: "track/flow_line/c.PNG", Prompt: "move"},
	}
	if len(result.Rows) != len(want) {
		t.Fatalf("expected %d rows, got %+v", len(want), result.Rows)
	}
	for i := range want {
		if result.Rows[i] != want[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, want[i], result.Rows[i])
		}
	}
	if result.Matched != 2 {
		t.Errorf("expected 2 matched rows, got %d", result.Matched)
	}
}

func TestGenerate_Options(t *testing.T) {
	g, fs := newGenerator()
	fs.WriteFile("root/x.mov", []byte("v"))
	fs.WriteFile("root/x.gif", []byte("v"))
	fs.WriteFile("root/flow/x.mov", []byte("v"))

	result, err := g.Generate(Options{
		Base:        "root",
		FlowLineDir: "flow",
		Prompt:      "rotate",
		Extensions:  []string{".MOV"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected only the mov file, got %+v", result.Rows)
	}
	r := result.Rows[0]
	if r.Video != "x.mov" || r.FlowLine != "flow/x.mov" || r.Prompt != "rotate" {
		t.Errorf("unexpected row: %+v", r)
	}
}

func TestGenerate_MissingFolder(t *testing.T) {
	g, _ := newGenerator()
	if _, err := g.Generate(Options{Base: "none"}); !errors.Is(err, ErrFolderNotFound) {
		t.Errorf("expected ErrFolderNotFound, got %v", err)
	}
}

func TestEncodeDecode(t *testing.T) {
	rows := []Row{
		{Video: "track/a.mp4", FlowLine: "track/flow_line/a.mp4", Prompt: "move"},
		{Video: "track/b, c.mp4", FlowLine: "", Prompt: `say "hi"`},
	}

	data, err := Encode(rows)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "video,flow_line,prompt\n") {
		t.Errorf("expected header line, got %q", data)
	}
	if !strings.Contains(string(data), "track/a.mp4,track/flow_line/a.mp4,move\n") {
		t.Errorf("unexpected csv body: %q", data)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(decoded) != 2 || decoded[1] != rows[1] {
		t.Errorf("quoted fields should survive, got %+v", decoded)
	}
}

func TestDecode_BadHeader(t *testing.T) {
	if _, err := Decode([]byte("a,b,c\n1,2,3\n")); err == nil {
		t.Error("expected header error")
	}
}

func TestSave(t *testing.T) {
	g, fs := newGenerator()
	rows := []Row{{Video: "a.mp4", Prompt: "move"}}

	if err := g.Save("data/config/metadata.csv", rows); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, ok := fs.GetFile("data/config/metadata.csv")
	if !ok {
		t.Fatal("expected metadata file to be written")
	}
	if string(data) != "video,flow_line,prompt\na.mp4,,move\n" {
		t.Errorf("unexpected contents: %q", data)
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/flowclip/pkg/adapters/osfilesystem"
	"github.com/user/flowclip/pkg/checkpoint"
)

func run(t *testing.T, args ...string) {
	t.Helper()
	if err := newApp().Run(append([]string{"flowclip"}, args...)); err != nil {
		t.Fatalf("flowclip %v: %v", args, err)
	}
}

func writeCheckpoint(t *testing.T, path string, keys ...string) {
	t.Helper()
	f := checkpoint.NewFile()
	for i, k := range keys {
		f.Tensors[k] = checkpoint.Tensor{DType: "U8", Shape: []int64{1}, Data: []byte{byte(i)}}
	}
	if err := checkpoint.Save(osfilesystem.New(), path, f); err != nil {
		t.Fatal(err)
	}
}

func readKeys(t *testing.T, path string) []string {
	t.Helper()
	f, err := checkpoint.Load(osfilesystem.New(), path)
	if err != nil {
		t.Fatal(err)
	}
	return f.Keys()
}

func TestCkptStrip(t *testing.T) {
	input := filepath.Join(t.TempDir(), "epoch-0.safetensors")
	writeCheckpoint(t, input,
		"pipe.dit.head.weight",
		"pipe.flow_line_adapter.flow_line_blocks.0.weight",
	)

	run(t, "ckpt", "strip", "-Q", "-i", input)

	keys := readKeys(t, filepath.Join(filepath.Dir(input), "epoch-0_clean.safetensors"))
	if len(keys) != 2 || keys[0] != "flow_line_blocks.0.weight" || keys[1] != "head.weight" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestCkptSplit(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "model.safetensors")
	writeCheckpoint(t, input, "flow_line_blocks.0.weight", "flow_line_patch_embedding.proj", "blocks.0.weight")

	run(t, "ckpt", "split", "-Q", "-i", input, "--backbone", filepath.Join(dir, "dit.safetensors"))

	if keys := readKeys(t, filepath.Join(dir, "model_adapter.safetensors")); len(keys) != 2 {
		t.Errorf("expected 2 adapter keys, got %v", keys)
	}
	if keys := readKeys(t, filepath.Join(dir, "dit.safetensors")); len(keys) != 1 || keys[0] != "blocks.0.weight" {
		t.Errorf("unexpected backbone keys: %v", keys)
	}
}

func TestCkptFilter(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "model.safetensors")
	output := filepath.Join(dir, "adapter.safetensors")
	writeCheckpoint(t, input, "flow_line_blocks.0.weight", "blocks.0.weight")

	run(t, "ckpt", "filter", "-Q", "-i", input, "-o", output)

	if keys := readKeys(t, output); len(keys) != 1 || keys[0] != "flow_line_blocks.0.weight" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestMeta(t *testing.T) {
	base := t.TempDir()
	for _, p := range []string{"track/a.mp4", "track/b.mp4", "track/flow_line/a.mp4", "track/notes.txt"} {
		path := filepath.Join(base, filepath.FromSlash(p))
		os.MkdirAll(filepath.Dir(path), 0755)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	run(t, "meta", "-Q", "--base", base, "--folder", "track")

	data, err := os.ReadFile(filepath.Join(base, "metadata.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "video,flow_line,prompt\ntrack/a.mp4,track/flow_line/a.mp4,move\ntrack/b.mp4,,move\n"
	if string(data) != want {
		t.Errorf("unexpected metadata:\n%s", data)
	}
}

func TestDerivedPath(t *testing.T) {
	if got := derivedPath("ckpt/epoch-0.safetensors", "_clean"); got != "ckpt/epoch-0_clean.safetensors" {
		t.Errorf("unexpected path %q", got)
	}
	if got := derivedPath("weights", "_dit"); got != "weights_dit.safetensors" {
		t.Errorf("unexpected path %q", got)
	}
}

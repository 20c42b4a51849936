package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestRenderer_CreateCanvas(t *testing.T) {
	r := New()

	canvas := r.CreateCanvas(100, 100, color.White)
	if canvas == nil {
		t.Fatal("expected canvas to be created")
	}

	img := canvas.ToImage()
	bounds := img.Bounds()

	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("expected 100x100, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	r8, g8, b8, _ := img.At(50, 50).RGBA()
	if r8>>8 != 255 || g8>>8 != 255 || b8>>8 != 255 {
		t.Errorf("expected white background, got %v", img.At(50, 50))
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 30, 30))

	data, err := r.EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 30 || bounds.Dy() != 30 {
		t.Errorf("expected 30x30, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	resized := r.ResizeImage(img, 40, 20)

	bounds := resized.Bounds()
	if bounds.Dx() != 40 || bounds.Dy() != 20 {
		t.Errorf("expected 40x20, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestCanvas_DrawOperations(t *testing.T) {
	r := New()
	canvas := r.CreateCanvas(64, 64, color.Black)

	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
		src.Pix[i+3] = 255
	}

	canvas.DrawImage(src, 0, 0)
	canvas.DrawRect(40, 40, 10, 10, color.RGBA{G: 255, A: 255})
	canvas.DrawRectStroke(20, 20, 10, 10, color.White, 2)
	canvas.DrawText("#12", 2, 56, color.White)

	img := canvas.ToImage()

	if r8, _, _, _ := img.At(4, 4).RGBA(); r8>>8 != 255 {
		t.Errorf("expected red pixel from DrawImage, got %v", img.At(4, 4))
	}
	if _, g8, _, _ := img.At(45, 45).RGBA(); g8>>8 != 255 {
		t.Errorf("expected green pixel from DrawRect, got %v", img.At(45, 45))
	}
	if r8, _, _, _ := img.At(25, 25).RGBA(); r8 != 0 {
		t.Errorf("expected stroke to leave the interior untouched, got %v", img.At(25, 25))
	}
}

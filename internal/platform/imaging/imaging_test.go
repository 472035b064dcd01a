package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestInspect_PNG(t *testing.T) {
	info, err := Inspect(pngBytes(t, 3, 2))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Format != "png" || info.Ext != ".png" || info.ContentType != "image/png" || info.Width != 3 || info.Height != 2 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestInspect_RejectsNonImages(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("hello, not an image")} {
		if _, err := Inspect(data); !errors.Is(err, ErrUnsupported) {
			t.Fatalf("expected ErrUnsupported, got %v", err)
		}
	}
}

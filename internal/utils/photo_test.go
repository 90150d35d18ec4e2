package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func pngDataURL(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("codificar png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeCompressed(t *testing.T, dataURL string) image.Image {
	t.Helper()

	if !strings.HasPrefix(dataURL, "data:image/jpeg;base64,") {
		t.Fatalf("esperava data URL JPEG, veio %q", dataURL[:30])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/jpeg;base64,"))
	if err != nil {
		t.Fatalf("decodificar base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decodificar jpeg: %v", err)
	}
	return img
}

func TestCompressPhotoResizesLargeImages(t *testing.T) {
	out, err := CompressPhoto(pngDataURL(t, 1600, 1200))
	if err != nil {
		t.Fatalf("comprimir foto: %v", err)
	}

	img := decodeCompressed(t, out)
	bounds := img.Bounds()
	if bounds.Dx() != 800 {
		t.Fatalf("esperava largura 800, veio %d", bounds.Dx())
	}
	if bounds.Dy() != 600 {
		t.Fatalf("esperava altura proporcional 600, veio %d", bounds.Dy())
	}
}

func TestCompressPhotoKeepsSmallImages(t *testing.T) {
	out, err := CompressPhoto(pngDataURL(t, 200, 300))
	if err != nil {
		t.Fatalf("comprimir foto: %v", err)
	}

	img := decodeCompressed(t, out)
	bounds := img.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 300 {
		t.Fatalf("dimensões alteradas sem necessidade: %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestCompressPhotoRejectsGarbage(t *testing.T) {
	if _, err := CompressPhoto("data:image/png;base64,nao-e-base64!!!"); !errors.Is(err, ErrPhotoInvalidFormat) {
		t.Fatalf("esperava ErrPhotoInvalidFormat, veio %v", err)
	}

	notAnImage := base64.StdEncoding.EncodeToString([]byte("texto qualquer"))
	if _, err := CompressPhoto("data:image/png;base64," + notAnImage); !errors.Is(err, ErrPhotoInvalidFormat) {
		t.Fatalf("esperava ErrPhotoInvalidFormat, veio %v", err)
	}
}

func TestCompressPhotoRejectsOversized(t *testing.T) {
	huge := base64.StdEncoding.EncodeToString(make([]byte, MaxPhotoBytes+1))
	if _, err := CompressPhoto("data:image/png;base64," + huge); !errors.Is(err, ErrPhotoTooLarge) {
		t.Fatalf("esperava ErrPhotoTooLarge, veio %v", err)
	}
}

package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
)

const (
	MaxPhotoBytes  = 2 << 20 // 2 MiB antes da compressão
	maxPhotoWidth  = 800
	maxPhotoHeight = 800
	photoQuality   = 70
)

var (
	ErrPhotoTooLarge      = errors.New("a foto excede o tamanho máximo de 2MB")
	ErrPhotoInvalidFormat = errors.New("formato de imagem inválido, use JPG ou PNG")
)

// CompressPhoto recebe a foto de perfil como data URL base64, redimensiona
// mantendo a proporção dentro de 800x800 e devolve um data URL JPEG.
func CompressPhoto(dataURL string) (string, error) {
	raw := dataURL
	if idx := strings.Index(raw, ";base64,"); idx >= 0 {
		raw = raw[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrPhotoInvalidFormat
	}
	if len(data) > MaxPhotoBytes {
		return "", ErrPhotoTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrPhotoInvalidFormat
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxPhotoWidth || height > maxPhotoHeight {
		if width > height {
			height = height * maxPhotoWidth / width
			width = maxPhotoWidth
		} else {
			width = width * maxPhotoHeight / height
			height = maxPhotoHeight
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: photoQuality}); err != nil {
		return "", err
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const credentialImageSize = 256

// NewCredentialCode gera um código opaco único com 128 bits de aleatoriedade.
func NewCredentialCode() string {
	return "QR-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// RenderCredentialImage codifica o código em um PNG escaneável.
func RenderCredentialImage(code string) ([]byte, error) {
	return qrcode.Encode(code, qrcode.Medium, credentialImageSize)
}

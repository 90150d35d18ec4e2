package utils

import (
	"strings"
	"testing"
)

func TestDocumentRoundTrip(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "12345678901234567890123456789012")

	document := "12.345.678-9"
	encrypted, err := EncryptDocument(document)
	if err != nil {
		t.Fatalf("cifrar documento: %v", err)
	}
	if encrypted == document {
		t.Fatal("documento guardado em claro")
	}

	decrypted, err := DecryptDocument(encrypted)
	if err != nil {
		t.Fatalf("decifrar documento: %v", err)
	}
	if decrypted != document {
		t.Fatalf("esperava %q, veio %q", document, decrypted)
	}

	// Cada cifragem usa um IV novo.
	again, err := EncryptDocument(document)
	if err != nil {
		t.Fatalf("cifrar de novo: %v", err)
	}
	if again == encrypted {
		t.Fatal("duas cifragens idênticas, IV repetido")
	}
}

func TestEncryptionKeyValidation(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "curta")
	if _, err := GetEncryptionKey(); err == nil {
		t.Fatal("chave de tamanho inválido deveria falhar")
	}

	t.Setenv("ENCRYPTION_KEY", "")
	if _, err := EncryptData("qualquer"); err == nil {
		t.Fatal("cifragem sem chave deveria falhar")
	}
}

func TestNewCredentialCode(t *testing.T) {
	a := NewCredentialCode()
	b := NewCredentialCode()

	if !strings.HasPrefix(a, "QR-") {
		t.Fatalf("esperava prefixo QR-, veio %q", a)
	}
	if a == b {
		t.Fatal("códigos de credencial repetidos")
	}

	image, err := RenderCredentialImage(a)
	if err != nil {
		t.Fatalf("renderizar QR: %v", err)
	}
	if len(image) == 0 {
		t.Fatal("imagem de QR vazia")
	}
}

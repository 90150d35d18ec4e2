package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

func TestCreateMilitaryListsAllMissingFields(t *testing.T) {
	db := newHandlerTestDB(t)
	router := newTestRouter(t, db)

	w := doJSON(t, router, http.MethodPost, "/api/militaries", map[string]interface{}{
		"function": "Motorista",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, veio %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	fields, ok := body["fields"].([]interface{})
	if !ok {
		t.Fatalf("resposta sem lista de campos: %v", body)
	}
	if len(fields) != 3 {
		t.Fatalf("esperava 3 campos faltantes, veio %v", fields)
	}
}

func TestCreateMilitaryRejectsUnknownUnit(t *testing.T) {
	db := newHandlerTestDB(t)
	router := newTestRouter(t, db)

	w := doJSON(t, router, http.MethodPost, "/api/militaries", map[string]interface{}{
		"full_name": "Maria Silva",
		"rank":      "Sargento",
		"unit":      "Companhia Inexistente",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, veio %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	fields, _ := body["fields"].([]interface{})
	if len(fields) != 1 || fields[0] != "unit" {
		t.Fatalf("esperava apenas unit, veio %v", fields)
	}
}

func TestCreateMilitaryStoresDocumentEncrypted(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "12345678901234567890123456789012")

	db := newHandlerTestDB(t)
	router := newTestRouter(t, db)

	w := doJSON(t, router, http.MethodPost, "/api/militaries", map[string]interface{}{
		"full_name": "Maria Silva",
		"rank":      "Sargento",
		"unit":      "1ª Companhia",
		"document":  "12.345.678-9",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("esperava 201, veio %d (%s)", w.Code, w.Body.String())
	}

	var stored models.Military
	if err := db.Where("full_name = ?", "Maria Silva").First(&stored).Error; err != nil {
		t.Fatalf("buscar cadastro: %v", err)
	}
	if stored.EncryptedDocument == "" {
		t.Fatal("documento não foi guardado cifrado")
	}
	if strings.Contains(stored.EncryptedDocument, "12.345.678-9") {
		t.Fatal("documento em claro no banco")
	}

	// A consulta individual devolve o documento decifrado.
	get := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/militaries/%d", stored.ID), nil)
	if get.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d", get.Code)
	}
	body := decodeBody(t, get)
	if body["document"] != "12.345.678-9" {
		t.Fatalf("documento não decifrado na consulta: %v", body["document"])
	}
}

func TestIssueCredentialEndpoint(t *testing.T) {
	db := newHandlerTestDB(t)
	router := newTestRouter(t, db)

	military := models.Military{
		FullName: "João Pereira",
		Rank:     "Cabo",
		Unit:     "2ª Companhia",
		Status:   models.MilitaryStatusActive,
	}
	if err := db.Create(&military).Error; err != nil {
		t.Fatalf("criar militar: %v", err)
	}

	path := fmt.Sprintf("/api/militaries/%d/credential", military.ID)

	w := doJSON(t, router, http.MethodPost, path, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("esperava 201, veio %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	code, _ := body["code"].(string)
	if !strings.HasPrefix(code, "QR-") {
		t.Fatalf("código inesperado: %q", code)
	}
	image, _ := body["image"].(string)
	if !strings.HasPrefix(image, "data:image/png;base64,") {
		t.Fatal("resposta sem imagem do QR")
	}

	// Reemissão é conflito, não substituição.
	again := doJSON(t, router, http.MethodPost, path, nil)
	if again.Code != http.StatusConflict {
		t.Fatalf("esperava 409 na reemissão, veio %d", again.Code)
	}

	// A credencial resolve de volta ao cadastro.
	lookup := doJSON(t, router, http.MethodGet, "/api/militaries/qr/"+code, nil)
	if lookup.Code != http.StatusOK {
		t.Fatalf("esperava 200 na busca por QR, veio %d", lookup.Code)
	}
	lookupBody := decodeBody(t, lookup)
	if lookupBody["full_name"] != "João Pereira" {
		t.Fatalf("QR resolveu para o cadastro errado: %v", lookupBody["full_name"])
	}
}

func TestIssueCredentialIncompleteRecord(t *testing.T) {
	db := newHandlerTestDB(t)
	router := newTestRouter(t, db)

	military := models.Military{
		FullName: "Sem Posto",
		Unit:     "1ª Companhia",
		Status:   models.MilitaryStatusActive,
	}
	if err := db.Create(&military).Error; err != nil {
		t.Fatalf("criar militar: %v", err)
	}

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/militaries/%d/credential", military.ID), nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("esperava 422, veio %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["field"] != "rank" {
		t.Fatalf("esperava campo rank, veio %v", body["field"])
	}
}

func TestDeleteMilitaryWithCredentialConflicts(t *testing.T) {
	db := newHandlerTestDB(t)
	router := newTestRouter(t, db)

	military := models.Military{
		FullName: "Carlos Andrade",
		Rank:     "Tenente",
		Unit:     "Estado-Maior",
		Status:   models.MilitaryStatusActive,
	}
	if err := db.Create(&military).Error; err != nil {
		t.Fatalf("criar militar: %v", err)
	}

	issue := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/militaries/%d/credential", military.ID), nil)
	if issue.Code != http.StatusCreated {
		t.Fatalf("emitir credencial: %d", issue.Code)
	}

	del := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/militaries/%d", military.ID), nil)
	if del.Code != http.StatusConflict {
		t.Fatalf("esperava 409 na exclusão, veio %d (%s)", del.Code, del.Body.String())
	}

	// Mudar a situação segue permitido.
	update := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/militaries/%d", military.ID), map[string]interface{}{
		"status": "dismissed",
	})
	if update.Code != http.StatusOK {
		t.Fatalf("esperava 200 na mudança de situação, veio %d (%s)", update.Code, update.Body.String())
	}

	var stored models.Military
	if err := db.First(&stored, military.ID).Error; err != nil {
		t.Fatalf("buscar cadastro: %v", err)
	}
	if stored.Status != models.MilitaryStatusDismissed {
		t.Fatalf("situação não atualizada: %q", stored.Status)
	}
}

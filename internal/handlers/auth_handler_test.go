package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

func newAuthTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	authHandler := NewAuthHandler(db)

	router := gin.New()
	router.POST("/api/auth/login", authHandler.Login)
	return router
}

func seedOperator(t *testing.T, db *gorm.DB, username, password string, active bool) {
	t.Helper()

	operator := models.Operator{
		Username: username,
		Password: password,
		FullName: "Operador de Teste",
		Email:    username + "@checkin.eb.mil.br",
		Active:   active,
	}
	if err := db.Create(&operator).Error; err != nil {
		t.Fatalf("criar operador: %v", err)
	}
	// O gorm ignora `false` (valor zero) em campos com `default:true`,
	// então o estado inativo precisa ser gravado explicitamente.
	if !active {
		if err := db.Model(&operator).Update("active", false).Error; err != nil {
			t.Fatalf("desativar operador: %v", err)
		}
	}
}

func TestLoginSuccess(t *testing.T) {
	db := newHandlerTestDB(t)
	router := newAuthTestRouter(t, db)

	seedOperator(t, db, "sentinela", "Sentinela123!", true)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "sentinela",
		"password": "Sentinela123!",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("esperava 200, veio %d (%s)", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("resposta sem token")
	}
	operator, ok := body["operator"].(map[string]interface{})
	if !ok || operator["username"] != "sentinela" {
		t.Fatalf("dados do operador ausentes: %v", body)
	}
}

func TestLoginRejectsInactiveOperator(t *testing.T) {
	db := newHandlerTestDB(t)
	router := newAuthTestRouter(t, db)

	seedOperator(t, db, "desligado", "Desligado123!", false)

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "desligado",
		"password": "Desligado123!",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("esperava 401 para conta inativa, veio %d", w.Code)
	}
}

func TestLoginRateLimiting(t *testing.T) {
	db := newHandlerTestDB(t)
	router := newAuthTestRouter(t, db)

	seedOperator(t, db, "sentinela", "Sentinela123!", true)

	for i := 0; i < 3; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]interface{}{
			"username": "sentinela",
			"password": "errada",
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("tentativa %d: esperava 401, veio %d", i+1, w.Code)
		}
	}

	// Depois do limite, até a senha certa é barrada.
	w := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "sentinela",
		"password": "Sentinela123!",
	})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("esperava 429 após o bloqueio, veio %d (%s)", w.Code, w.Body.String())
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Sentinela123!", true},
		{"curta1!", false},
		{"semmaiuscula123!", false},
		{"SEMMINUSCULA123!", false},
		{"SemNumero!", false},
		{"SemEspecial123", false},
	}

	for _, tt := range tests {
		err := validatePasswordStrength(tt.password)
		if tt.valid && err != nil {
			t.Errorf("senha %q deveria passar: %v", tt.password, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("senha %q deveria falhar", tt.password)
		}
	}
}

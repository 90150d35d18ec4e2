package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "checkin_handler_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrir banco: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Operator{},
		&models.Military{},
		&models.Credential{},
		&models.AccessRequest{},
		&models.AccessEvent{},
		&models.Checkpoint{},
	); err != nil {
		t.Fatalf("migrar banco: %v", err)
	}

	return db
}

// newTestRouter monta as rotas sem autenticação real: um middleware de teste
// injeta o operador no contexto, como o AuthRequired faria.
func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()

	lifecycle := utils.NewLifecycleService(db)
	militaryHandler := NewMilitaryHandler(db, lifecycle)
	requestHandler := NewRequestHandler(db, lifecycle)
	rosterHandler := NewRosterHandler(lifecycle)
	checkpointHandler := NewCheckpointHandler(db)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("operatorID", uint(1))
		c.Set("isAdmin", true)
		c.Next()
	})

	api := router.Group("/api")
	{
		api.GET("/militaries", militaryHandler.GetMilitaries)
		api.GET("/militaries/:id", militaryHandler.GetMilitary)
		api.POST("/militaries", militaryHandler.CreateMilitary)
		api.PUT("/militaries/:id", militaryHandler.UpdateMilitary)
		api.DELETE("/militaries/:id", militaryHandler.DeleteMilitary)
		api.POST("/militaries/:id/credential", militaryHandler.IssueCredential)
		api.GET("/militaries/:id/credential", militaryHandler.GetCredential)
		api.GET("/militaries/qr/:code", militaryHandler.GetByQRCode)

		api.GET("/requests", requestHandler.GetRequests)
		api.POST("/requests", requestHandler.SubmitRequest)
		api.POST("/requests/:id/decide", requestHandler.DecideRequest)

		api.GET("/roster", rosterHandler.GetRoster)

		api.GET("/checkpoints", checkpointHandler.GetCheckpoints)
		api.POST("/checkpoints", checkpointHandler.CreateCheckpoint)
	}

	router.POST("/reader/scan", requestHandler.ScanCredential)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("serializar corpo: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decodificar resposta: %v (%s)", err, w.Body.String())
	}
	return body
}

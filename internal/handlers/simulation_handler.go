package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/utils"
)

// SimulationHandler reproduz a leitura de um QR sem o leitor físico, para
// demonstrações e homologação do fluxo de aprovação.
type SimulationHandler struct {
	DB        *gorm.DB
	lifecycle *utils.LifecycleService
}

type SimulateScanRequest struct {
	MilitaryID   uint   `json:"military_id" binding:"required"`
	CheckpointID uint   `json:"checkpoint_id"`
	Location     string `json:"location"`
}

type SimulateScanResponse struct {
	Request   *models.AccessRequest `json:"request"`
	Kind      models.AccessKind     `json:"kind"`
	Timestamp string                `json:"timestamp"`
}

func NewSimulationHandler(db *gorm.DB, lifecycle *utils.LifecycleService) *SimulationHandler {
	return &SimulationHandler{
		DB:        db,
		lifecycle: lifecycle,
	}
}

func (h *SimulationHandler) SimulateScan(c *gin.Context) {
	var req SimulateScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos. Informe o militar da simulação."})
		return
	}

	var credential models.Credential
	if err := h.DB.Where("military_id = ?", req.MilitaryID).First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "O militar ainda não possui credencial emitida"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar credencial"})
		}
		return
	}

	location := req.Location
	if req.CheckpointID != 0 {
		var checkpoint models.Checkpoint
		if err := h.DB.First(&checkpoint, req.CheckpointID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Ponto de controle não encontrado"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar ponto de controle"})
			}
			return
		}
		if !checkpoint.Active {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "O ponto de controle está desativado"})
			return
		}
		location = checkpoint.Name
	}

	now := time.Now()
	request, err := h.lifecycle.SubmitRequest(credential.MilitaryID, location, now)
	if err != nil {
		if respondDomainError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao registrar solicitação simulada"})
		return
	}

	c.JSON(http.StatusCreated, SimulateScanResponse{
		Request:   request,
		Kind:      request.RequestedKind,
		Timestamp: now.Format(time.RFC3339),
	})
}

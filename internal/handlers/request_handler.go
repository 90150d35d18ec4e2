package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/utils"
)

// RequestHandler expõe a fila de arbitragem: leituras de credencial viram
// solicitações pendentes e um operador as aprova ou rejeita.
type RequestHandler struct {
	db        *gorm.DB
	lifecycle *utils.LifecycleService
}

func NewRequestHandler(db *gorm.DB, lifecycle *utils.LifecycleService) *RequestHandler {
	return &RequestHandler{
		db:        db,
		lifecycle: lifecycle,
	}
}

func (h *RequestHandler) GetRequests(c *gin.Context) {
	query := h.db.Model(&models.AccessRequest{}).Preload("Military")

	status := c.DefaultQuery("status", string(models.RequestStatusPending))
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	if militaryID := c.Query("military_id"); militaryID != "" {
		query = query.Where("military_id = ?", militaryID)
	}

	var requests []models.AccessRequest
	if err := query.Order("created_at ASC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao listar solicitações"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de solicitação inválido"})
		return
	}

	var request models.AccessRequest
	if err := h.db.Preload("Military").First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Solicitação não encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar solicitação"})
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

// ScanCredential é o ponto de entrada dos leitores de QR nos portões: a
// leitura vira uma solicitação pendente, nunca uma admissão automática.
func (h *RequestHandler) ScanCredential(c *gin.Context) {
	var input struct {
		Code     string `json:"code" binding:"required"`
		Location string `json:"location"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos. Informe o código da credencial."})
		return
	}

	var credential models.Credential
	if err := h.db.Where("code = ?", input.Code).First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.lifecycle.ReportUnknownCredential(input.Code, input.Location)
			c.JSON(http.StatusNotFound, gin.H{"error": "Credencial não encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar credencial"})
		}
		return
	}

	request, err := h.lifecycle.SubmitRequest(credential.MilitaryID, input.Location, time.Now())
	if err != nil {
		if respondDomainError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao registrar solicitação"})
		return
	}

	c.JSON(http.StatusCreated, request)
}

// SubmitRequest registra uma solicitação manual pelo painel, sem leitura de
// credencial (cadastro antigo sem QR, por exemplo).
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	var input struct {
		MilitaryID uint   `json:"military_id" binding:"required"`
		Location   string `json:"location"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos. Informe o militar."})
		return
	}

	request, err := h.lifecycle.SubmitRequest(input.MilitaryID, input.Location, time.Now())
	if err != nil {
		if respondDomainError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao registrar solicitação"})
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *RequestHandler) DecideRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de solicitação inválido"})
		return
	}

	var input struct {
		Outcome models.AccessOutcome `json:"outcome" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos. Informe o resultado da decisão."})
		return
	}

	operatorID, exists := c.Get("operatorID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Autenticação necessária"})
		return
	}

	request, err := h.lifecycle.DecideRequest(uint(id), input.Outcome, operatorID.(uint))
	if err != nil {
		if respondDomainError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao registrar decisão"})
		return
	}

	c.JSON(http.StatusOK, request)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

type CheckpointHandler struct {
	db *gorm.DB
}

func NewCheckpointHandler(db *gorm.DB) *CheckpointHandler {
	return &CheckpointHandler{db: db}
}

func (h *CheckpointHandler) GetCheckpoints(c *gin.Context) {
	query := h.db.Model(&models.Checkpoint{})

	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var checkpoints []models.Checkpoint
	if err := query.Order("name ASC").Find(&checkpoints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao listar pontos de controle"})
		return
	}

	c.JSON(http.StatusOK, checkpoints)
}

func (h *CheckpointHandler) GetCheckpoint(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de ponto de controle inválido"})
		return
	}

	var checkpoint models.Checkpoint
	if err := h.db.First(&checkpoint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ponto de controle não encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar ponto de controle"})
		}
		return
	}

	c.JSON(http.StatusOK, checkpoint)
}

func (h *CheckpointHandler) CreateCheckpoint(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Active      *bool  `json:"active"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos. Informe o nome do ponto de controle."})
		return
	}

	var count int64
	if err := h.db.Model(&models.Checkpoint{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao verificar ponto de controle"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Já existe um ponto de controle com este nome"})
		return
	}

	checkpoint := models.Checkpoint{
		Name:        input.Name,
		Description: input.Description,
		Active:      true,
	}
	if input.Active != nil {
		checkpoint.Active = *input.Active
	}

	if err := h.db.Create(&checkpoint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao cadastrar ponto de controle"})
		return
	}

	c.JSON(http.StatusCreated, checkpoint)
}

func (h *CheckpointHandler) UpdateCheckpoint(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de ponto de controle inválido"})
		return
	}

	var checkpoint models.Checkpoint
	if err := h.db.First(&checkpoint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ponto de controle não encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar ponto de controle"})
		}
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Active      *bool   `json:"active"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos. Verifique as informações enviadas."})
		return
	}

	if input.Name != nil && *input.Name != checkpoint.Name {
		var count int64
		if err := h.db.Model(&models.Checkpoint{}).
			Where("name = ? AND id != ?", *input.Name, checkpoint.ID).
			Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao verificar ponto de controle"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Já existe um ponto de controle com este nome"})
			return
		}
		checkpoint.Name = *input.Name
	}
	if input.Description != nil {
		checkpoint.Description = *input.Description
	}
	if input.Active != nil {
		checkpoint.Active = *input.Active
	}

	if err := h.db.Save(&checkpoint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao atualizar ponto de controle"})
		return
	}

	c.JSON(http.StatusOK, checkpoint)
}

func (h *CheckpointHandler) DeleteCheckpoint(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de ponto de controle inválido"})
		return
	}

	var checkpoint models.Checkpoint
	if err := h.db.First(&checkpoint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ponto de controle não encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar ponto de controle"})
		}
		return
	}

	if err := h.db.Delete(&checkpoint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao excluir ponto de controle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ponto de controle excluído com sucesso"})
}

// GetCheckpointLedger lista o histórico de eventos registrados neste ponto.
func (h *CheckpointHandler) GetCheckpointLedger(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de ponto de controle inválido"})
		return
	}

	var checkpoint models.Checkpoint
	if err := h.db.First(&checkpoint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ponto de controle não encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar ponto de controle"})
		}
		return
	}

	var events []models.AccessEvent
	if err := h.db.Preload("Military").
		Where("location = ?", checkpoint.Name).
		Order("timestamp DESC").
		Limit(100).
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao listar eventos do ponto de controle"})
		return
	}

	c.JSON(http.StatusOK, events)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/utils"
)

type ReportHandler struct {
	db           *gorm.DB
	statsService *utils.StatisticsService
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{
		db:           db,
		statsService: utils.NewStatisticsService(db),
	}
}

// GetEvents lista o livro de registros com filtros e paginação.
func (h *ReportHandler) GetEvents(c *gin.Context) {
	var events []models.AccessEvent

	query := h.db.Model(&models.AccessEvent{}).Preload("Military")

	if militaryID := c.Query("military_id"); militaryID != "" {
		query = query.Where("military_id = ?", militaryID)
	}

	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	if outcome := c.Query("outcome"); outcome != "" {
		query = query.Where("outcome = ?", outcome)
	}

	if location := c.Query("location"); location != "" {
		query = query.Where("location = ?", location)
	}

	if startDate := c.Query("start_date"); startDate != "" {
		query = query.Where("timestamp >= ?", startDate+" 00:00:00")
	}
	if endDate := c.Query("end_date"); endDate != "" {
		query = query.Where("timestamp <= ?", endDate+" 23:59:59")
	}

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if limitNum, err := strconv.Atoi(limitStr); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}

	page := 0
	if pageStr := c.Query("page"); pageStr != "" {
		if pageNum, err := strconv.Atoi(pageStr); err == nil && pageNum > 0 {
			page = pageNum - 1
		}
	}

	if err := query.Order("timestamp DESC").Limit(limit).Offset(page * limit).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao listar o histórico de acessos"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *ReportHandler) GetEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de evento inválido"})
		return
	}

	var event models.AccessEvent
	if err := h.db.Preload("Military").First(&event, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Evento não encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar evento"})
		}
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *ReportHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.statsService.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao calcular estatísticas do painel: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *ReportHandler) GetCheckInTimeSeries(c *gin.Context) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -7)

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if t, err := time.Parse("2006-01-02", startDateStr); err == nil {
			startDate = t
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if t, err := time.Parse("2006-01-02", endDateStr); err == nil {
			endDate = t.Add(24*time.Hour - time.Second)
		}
	}

	location := c.Query("location")
	interval := c.DefaultQuery("interval", "day")

	data, err := h.statsService.GetCheckInTimeSeries(location, interval, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao montar série temporal de check-ins: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *ReportHandler) GetBusiestLocations(c *gin.Context) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, -1, 0)

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if t, err := time.Parse("2006-01-02", startDateStr); err == nil {
			startDate = t
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if t, err := time.Parse("2006-01-02", endDateStr); err == nil {
			endDate = t.Add(24*time.Hour - time.Second)
		}
	}

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	locations, err := h.statsService.GetBusiestLocations(limit, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao listar pontos de controle mais movimentados: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *ReportHandler) GetMostActiveMilitaries(c *gin.Context) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, -1, 0)

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if t, err := time.Parse("2006-01-02", startDateStr); err == nil {
			startDate = t
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if t, err := time.Parse("2006-01-02", endDateStr); err == nil {
			endDate = t.Add(24*time.Hour - time.Second)
		}
	}

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	militaries, err := h.statsService.GetMostActiveMilitaries(limit, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao listar militares mais ativos: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, militaries)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/utils"
)

type RosterHandler struct {
	lifecycle *utils.LifecycleService
}

func NewRosterHandler(lifecycle *utils.LifecycleService) *RosterHandler {
	return &RosterHandler{lifecycle: lifecycle}
}

// GetRoster lista cadastro + presença + solicitação pendente, com busca por
// substring (nome, posto, unidade) e filtros exatos de presença e situação.
func (h *RosterHandler) GetRoster(c *gin.Context) {
	filter := utils.RosterFilter{
		Query:    c.Query("q"),
		Presence: models.PresenceState(c.Query("presence")),
		Status:   models.MilitaryStatus(c.Query("status")),
	}

	rows, err := h.lifecycle.Roster(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao montar a lista de presença"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

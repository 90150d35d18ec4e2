package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/utils"
)

type MilitaryHandler struct {
	db        *gorm.DB
	lifecycle *utils.LifecycleService
}

func NewMilitaryHandler(db *gorm.DB, lifecycle *utils.LifecycleService) *MilitaryHandler {
	return &MilitaryHandler{
		db:        db,
		lifecycle: lifecycle,
	}
}

func (h *MilitaryHandler) GetMilitaries(c *gin.Context) {
	query := h.db.Model(&models.Military{}).Preload("Credential")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if unit := c.Query("unit"); unit != "" {
		query = query.Where("unit = ?", unit)
	}

	if q := c.Query("q"); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(rank) LIKE ? OR LOWER(unit) LIKE ?", like, like, like)
	}

	var militaries []models.Military
	if err := query.Order("full_name ASC").Find(&militaries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao listar militares"})
		return
	}

	c.JSON(http.StatusOK, militaries)
}

func (h *MilitaryHandler) GetMilitary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de militar inválido"})
		return
	}

	var military models.Military
	if err := h.db.Preload("Credential").First(&military, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Militar não encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar dados do militar"})
		}
		return
	}

	if military.EncryptedDocument != "" {
		if document, err := utils.DecryptDocument(military.EncryptedDocument); err == nil {
			military.Document = document
		}
	}

	c.JSON(http.StatusOK, military)
}

func (h *MilitaryHandler) CreateMilitary(c *gin.Context) {
	var input struct {
		FullName string                `json:"full_name"`
		Rank     string                `json:"rank"`
		Function string                `json:"function"`
		Unit     string                `json:"unit"`
		Document string                `json:"document"`
		Vehicle  string                `json:"vehicle"`
		Status   models.MilitaryStatus `json:"status"`
		Photo    string                `json:"photo"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos. Verifique as informações enviadas."})
		return
	}

	military := models.Military{
		FullName: input.FullName,
		Rank:     input.Rank,
		Function: input.Function,
		Unit:     input.Unit,
		Vehicle:  input.Vehicle,
		Status:   input.Status,
	}
	if military.Status == "" {
		military.Status = models.MilitaryStatusActive
	}

	// Todos os campos faltantes de uma vez, não só o primeiro: o formulário
	// destaca tudo em uma rodada.
	if missing := utils.MissingRequiredFields(&military); len(missing) > 0 {
		respondDomainError(c, &models.ValidationError{Fields: missing})
		return
	}

	if input.Photo != "" {
		photo, err := utils.CompressPhoto(input.Photo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		military.Photo = photo
	}

	if input.Document != "" {
		encrypted, err := utils.EncryptDocument(input.Document)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao proteger o documento do militar"})
			return
		}
		military.EncryptedDocument = encrypted
		military.Document = input.Document
	}

	if err := h.db.Create(&military).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao cadastrar militar"})
		return
	}

	c.JSON(http.StatusCreated, military)
}

func (h *MilitaryHandler) UpdateMilitary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de militar inválido"})
		return
	}

	var military models.Military
	if err := h.db.First(&military, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Militar não encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar dados do militar"})
		}
		return
	}

	var input struct {
		FullName *string                `json:"full_name"`
		Rank     *string                `json:"rank"`
		Function *string                `json:"function"`
		Unit     *string                `json:"unit"`
		Document *string                `json:"document"`
		Vehicle  *string                `json:"vehicle"`
		Status   *models.MilitaryStatus `json:"status"`
		Photo    *string                `json:"photo"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos. Verifique as informações enviadas."})
		return
	}

	if input.FullName != nil {
		military.FullName = *input.FullName
	}
	if input.Rank != nil {
		military.Rank = *input.Rank
	}
	if input.Function != nil {
		military.Function = *input.Function
	}
	if input.Unit != nil {
		military.Unit = *input.Unit
	}
	if input.Vehicle != nil {
		military.Vehicle = *input.Vehicle
	}
	if input.Status != nil {
		military.Status = *input.Status
	}

	if missing := utils.MissingRequiredFields(&military); len(missing) > 0 {
		respondDomainError(c, &models.ValidationError{Fields: missing})
		return
	}

	if input.Photo != nil {
		if *input.Photo == "" {
			military.Photo = ""
		} else {
			photo, err := utils.CompressPhoto(*input.Photo)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			military.Photo = photo
		}
	}

	if input.Document != nil {
		if *input.Document == "" {
			military.EncryptedDocument = ""
			military.Document = ""
		} else {
			encrypted, err := utils.EncryptDocument(*input.Document)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao proteger o documento do militar"})
				return
			}
			military.EncryptedDocument = encrypted
			military.Document = *input.Document
		}
	}

	if err := h.db.Save(&military).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao atualizar dados do militar"})
		return
	}

	c.JSON(http.StatusOK, military)
}

func (h *MilitaryHandler) DeleteMilitary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de militar inválido"})
		return
	}

	if err := h.lifecycle.RemoveMilitary(uint(id)); err != nil {
		if respondDomainError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao excluir militar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Militar excluído com sucesso"})
}

func (h *MilitaryHandler) IssueCredential(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de militar inválido"})
		return
	}

	credential, err := h.lifecycle.IssueCredential(uint(id))
	if err != nil {
		if respondDomainError(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao emitir credencial"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":      credential.Code,
		"issued_at": credential.IssuedAt,
		"image":     credential.ImageDataURL(),
	})
}

func (h *MilitaryHandler) GetCredential(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identificador de militar inválido"})
		return
	}

	var credential models.Credential
	if err := h.db.Where("military_id = ?", id).First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credencial não encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar credencial"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":      credential.Code,
		"issued_at": credential.IssuedAt,
		"image":     credential.ImageDataURL(),
	})
}

// GetByQRCode resolve uma credencial lida no portão de volta ao cadastro.
func (h *MilitaryHandler) GetByQRCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Código de credencial inválido"})
		return
	}

	var credential models.Credential
	if err := h.db.Where("code = ?", code).First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credencial não encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar credencial"})
		}
		return
	}

	var military models.Military
	if err := h.db.Preload("Credential").First(&military, credential.MilitaryID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao buscar dados do militar"})
		return
	}

	c.JSON(http.StatusOK, military)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

// respondDomainError traduz os erros de domínio para status HTTP e devolve
// true quando o erro foi tratado. Cada tipo vira uma mensagem específica;
// falha genérica só quando o erro não é de domínio.
func respondDomainError(c *gin.Context, err error) bool {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "fields": validationErr.Fields})
		return true
	}

	var preconditionErr *models.PreconditionError
	if errors.As(err, &preconditionErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": preconditionErr.Error(), "field": preconditionErr.Field})
		return true
	}

	var conflictErr *models.ConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
		return true
	}

	var notFoundErr *models.NotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
		return true
	}

	var invalidStateErr *models.InvalidStateError
	if errors.As(err, &invalidStateErr) {
		c.JSON(http.StatusConflict, gin.H{"error": invalidStateErr.Error()})
		return true
	}

	return false
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/config"
)

// APIKeyMiddleware protege as rotas chamadas pelos leitores de QR nos
// portões, que não autenticam como operador.
type APIKeyMiddleware struct {
	config *config.Config
}

func NewAPIKeyMiddleware(config *config.Config) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		config: config,
	}
}

func (m *APIKeyMiddleware) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.APIKeyRequired {
			c.Next()
			return
		}

		apiKey := c.GetHeader("X-API-Key")

		if apiKey == "" {
			apiKey = c.Query("api_key")
		}

		if apiKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Chave de API obrigatória"})
			c.Abort()
			return
		}

		validKey := false
		for _, key := range m.config.APIKeys {
			if apiKey == key {
				validKey = true
				break
			}
		}

		if !validKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Chave de API inválida"})
			c.Abort()
			return
		}

		c.Next()
	}
}

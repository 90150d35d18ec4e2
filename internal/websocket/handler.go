package websocket

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

type WebSocketHandler struct {
	db  *gorm.DB
	hub *Hub
}

func NewWebSocketHandler(db *gorm.DB) *WebSocketHandler {
	hub := NewHub()
	go hub.Run()

	return &WebSocketHandler{
		db:  db,
		hub: hub,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	var operatorID uint
	var isAdmin bool

	tokenString := c.Query("token")
	if tokenString != "" {
		jwtSecret := os.Getenv("JWT_SECRET")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
			}

			return []byte(jwtSecret), nil
		})

		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if id, ok := claims["id"].(float64); ok {
					operatorID = uint(id)
				}
				if admin, ok := claims["isAdmin"].(bool); ok {
					isAdmin = admin
				}
			}
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Falha ao estabelecer conexão WebSocket: %v", err)
		return
	}

	client := &Client{
		hub:        h.hub,
		conn:       conn,
		send:       make(chan []byte, 256),
		operatorID: operatorID,
		isAdmin:    isAdmin,
	}

	go client.HandleClientConnection()
}

// NotifyPendingRequest avisa a Central de Autorização que uma nova
// solicitação aguarda decisão.
func (h *WebSocketHandler) NotifyPendingRequest(request models.AccessRequest) {
	var military models.Military
	if err := h.db.First(&military, request.MilitaryID).Error; err != nil {
		log.Printf("Falha ao buscar dados do militar: %v", err)
		return
	}

	event := PendingRequestEvent{
		RequestID: request.ID,
		Kind:      string(request.RequestedKind),
		Location:  request.Location,
		Timestamp: request.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Military: MilitarySummary{
			ID:       military.ID,
			FullName: military.FullName,
			Rank:     military.Rank,
			Unit:     military.Unit,
		},
	}

	h.hub.BroadcastToAdmins("pending_request", event)
}

// NotifyDecision comunica o resultado de uma decisão para o painel
// atualizar a fila e a lista de presença.
func (h *WebSocketHandler) NotifyDecision(request models.AccessRequest) {
	var military models.Military
	if err := h.db.First(&military, request.MilitaryID).Error; err != nil {
		log.Printf("Falha ao buscar dados do militar: %v", err)
		return
	}

	event := DecisionEvent{
		RequestID: request.ID,
		Kind:      string(request.RequestedKind),
		Outcome:   string(request.Status),
		Location:  request.Location,
		Military: MilitarySummary{
			ID:       military.ID,
			FullName: military.FullName,
			Rank:     military.Rank,
			Unit:     military.Unit,
		},
	}
	if request.DecidedBy != nil {
		event.DecidedBy = *request.DecidedBy
	}
	if request.DecidedAt != nil {
		event.DecidedAt = request.DecidedAt.Format("2006-01-02T15:04:05Z07:00")
	}

	h.hub.BroadcastToAdmins("request_decided", event)

	// Recibo direcionado: o operador que decidiu recebe a confirmação na
	// própria conexão, mesmo sem perfil de administrador.
	if request.DecidedBy != nil {
		h.hub.BroadcastToOperator(*request.DecidedBy, "decision_receipt", event)
	}
}

// NotifyUnknownCredential alerta os administradores sobre uma leitura com
// código desconhecido: pode ser credencial revogada ou tentativa de fraude.
func (h *WebSocketHandler) NotifyUnknownCredential(code, location string) {
	if location == "" {
		location = "local não informado"
	}

	event := SystemEvent{
		Message:   fmt.Sprintf("Leitura com credencial desconhecida (%s) em %s", code, location),
		Severity:  "warning",
		Source:    "scanner",
		Timestamp: time.Now().Format("2006-01-02T15:04:05Z07:00"),
	}

	h.hub.BroadcastSystemEvent(event, true)
}

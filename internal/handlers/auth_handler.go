package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"sync"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/middleware"
	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

type loginAttempt struct {
	username  string
	ipAddress string
	timestamp time.Time
	success   bool
}

type AuthHandler struct {
	db               *gorm.DB
	authMiddleware   *middleware.AuthMiddleware
	loginAttempts    []loginAttempt
	rateLimitWindow  time.Duration
	maxLoginAttempts int
	blockDuration    time.Duration
	blockedIPs       map[string]time.Time
	blockedUsernames map[string]time.Time
	attemptsMutex    sync.Mutex
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{
		db:               db,
		authMiddleware:   middleware.NewAuthMiddleware(db),
		loginAttempts:    []loginAttempt{},
		rateLimitWindow:  10 * time.Minute,
		maxLoginAttempts: 3,
		blockDuration:    45 * time.Minute,
		blockedIPs:       make(map[string]time.Time),
		blockedUsernames: make(map[string]time.Time),
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ipAddress := c.ClientIP()

	if h.isIPBlocked(ipAddress) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Muitas tentativas de login sem sucesso. Tente novamente mais tarde."})
		return
	}

	if h.isUsernameBlocked(input.Username) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Muitas tentativas de login sem sucesso com este usuário. Tente novamente mais tarde."})
		return
	}

	var operator models.Operator
	if err := h.db.Where("username = ?", input.Username).First(&operator).Error; err != nil {
		h.recordLoginAttempt(input.Username, ipAddress, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário ou senha inválidos"})
		return
	}

	if !operator.Active {
		h.recordLoginAttempt(input.Username, ipAddress, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Conta de operador inativa"})
		return
	}

	if !operator.CheckPassword(input.Password) {
		h.recordLoginAttempt(input.Username, ipAddress, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuário ou senha inválidos"})
		return
	}

	token, err := h.authMiddleware.GenerateToken(operator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao gerar o token de acesso"})
		return
	}

	h.recordLoginAttempt(input.Username, ipAddress, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"operator": gin.H{
			"id":       operator.ID,
			"username": operator.Username,
			"fullName": operator.FullName,
			"email":    operator.Email,
			"isAdmin":  operator.IsAdmin,
		},
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		IsAdmin  bool   `json:"is_admin"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validatePasswordStrength(input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	operator := models.Operator{
		Username: input.Username,
		Password: input.Password,
		FullName: input.FullName,
		Email:    input.Email,
		IsAdmin:  input.IsAdmin,
		Active:   true,
	}

	if err := h.db.Create(&operator).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Falha ao cadastrar o operador"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       operator.ID,
		"username": operator.Username,
		"message":  "Operador cadastrado com sucesso",
	})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	operator, exists := c.Get("operator")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Operador não autenticado"})
		return
	}

	c.JSON(http.StatusOK, operator)
}

func (h *AuthHandler) recordLoginAttempt(username, ipAddress string, success bool) {
	h.attemptsMutex.Lock()
	defer h.attemptsMutex.Unlock()

	attempt := loginAttempt{
		username:  username,
		ipAddress: ipAddress,
		timestamp: time.Now(),
		success:   success,
	}
	h.loginAttempts = append(h.loginAttempts, attempt)

	if success {
		delete(h.blockedIPs, ipAddress)
		delete(h.blockedUsernames, username)
		return
	}

	cutoffTime := time.Now().Add(-h.rateLimitWindow)
	newAttempts := []loginAttempt{}
	for _, a := range h.loginAttempts {
		if a.timestamp.After(cutoffTime) {
			newAttempts = append(newAttempts, a)
		}
	}
	h.loginAttempts = newAttempts

	ipFailures := 0
	for _, a := range h.loginAttempts {
		if a.ipAddress == ipAddress && !a.success {
			ipFailures++
		}
	}

	usernameFailures := 0
	for _, a := range h.loginAttempts {
		if a.username == username && !a.success {
			usernameFailures++
		}
	}

	if ipFailures >= h.maxLoginAttempts {
		h.blockedIPs[ipAddress] = time.Now().Add(h.blockDuration)
	}

	if usernameFailures >= h.maxLoginAttempts {
		h.blockedUsernames[username] = time.Now().Add(h.blockDuration)
	}
}

func (h *AuthHandler) isIPBlocked(ipAddress string) bool {
	h.attemptsMutex.Lock()
	defer h.attemptsMutex.Unlock()

	blockUntil, exists := h.blockedIPs[ipAddress]
	if !exists {
		return false
	}

	if time.Now().After(blockUntil) {
		delete(h.blockedIPs, ipAddress)
		return false
	}

	return true
}

func (h *AuthHandler) isUsernameBlocked(username string) bool {
	h.attemptsMutex.Lock()
	defer h.attemptsMutex.Unlock()

	blockUntil, exists := h.blockedUsernames[username]
	if !exists {
		return false
	}

	if time.Now().After(blockUntil) {
		delete(h.blockedUsernames, username)
		return false
	}

	return true
}

func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("a senha deve ter pelo menos 8 caracteres")
	}

	hasUpper := false
	for _, c := range password {
		if unicode.IsUpper(c) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return errors.New("a senha deve conter pelo menos uma letra maiúscula")
	}

	hasLower := false
	for _, c := range password {
		if unicode.IsLower(c) {
			hasLower = true
			break
		}
	}
	if !hasLower {
		return errors.New("a senha deve conter pelo menos uma letra minúscula")
	}

	hasDigit := false
	for _, c := range password {
		if unicode.IsDigit(c) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return errors.New("a senha deve conter pelo menos um número")
	}

	specialChar := regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
	if !specialChar.MatchString(password) {
		return errors.New("a senha deve conter pelo menos um caractere especial (ex.: !@#$%^&*)")
	}

	return nil
}

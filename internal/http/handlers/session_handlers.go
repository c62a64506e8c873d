package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// SessionHandlers exposes the session lifecycle to the UI layer
type SessionHandlers struct {
	sessions domain.SessionController
}

// NewSessionHandlers creates new session handlers
func NewSessionHandlers(sessions domain.SessionController) *SessionHandlers {
	return &SessionHandlers{sessions: sessions}
}

// LoginRequest represents a login submission
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// RegisterRequest represents a member registration submission
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	PlanKey  string `json:"plan_key" binding:"required"`
}

// MerchantRegisterRequest represents a merchant registration submission
type MerchantRegisterRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	PlanKey      string `json:"plan_key" binding:"required"`
}

// Session returns the read-only session snapshot
func (h *SessionHandlers) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.sessions.Snapshot()})
}

// Login handles member login
func (h *SessionHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.sessions.Login(c.Request.Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"identity": identity}})
}

// MerchantLogin handles merchant login
func (h *SessionHandlers) MerchantLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.sessions.MerchantLogin(c.Request.Context(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Remember: req.Remember,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"identity": identity}})
}

// Register handles member registration
func (h *SessionHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.sessions.Register(c.Request.Context(), domain.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		PlanKey:  req.PlanKey,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"identity": identity}})
}

// MerchantRegister handles merchant registration
func (h *SessionHandlers) MerchantRegister(c *gin.Context) {
	var req MerchantRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.sessions.MerchantRegister(c.Request.Context(), domain.MerchantRegistration{
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Password:     req.Password,
		PlanKey:      req.PlanKey,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"identity": identity}})
}

// Logout handles logout. The local session is cleared even when the backend
// call fails, so this always reports logged out.
func (h *SessionHandlers) Logout(c *gin.Context) {
	upstreamErr := h.sessions.Logout(c.Request.Context())

	response := gin.H{"message": "Logged out successfully"}
	if upstreamErr != nil {
		response["upstream"] = "logout call failed; local session cleared"
	}
	c.JSON(http.StatusOK, gin.H{"data": response})
}

// Validate runs an on-demand probe and reports the result
func (h *SessionHandlers) Validate(c *gin.Context) {
	valid := h.sessions.ValidateSession(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"valid": valid}})
}

// Expired is the explicit expiry trigger for the UI's 401 interceptor
func (h *SessionHandlers) Expired(c *gin.Context) {
	h.sessions.HandleSessionExpired()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Session marked expired"}})
}

// Remembered returns the login-form prefill
func (h *SessionHandlers) Remembered(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"email": h.sessions.RememberedEmail(c.Request.Context())}})
}

// respondUpstreamError maps the classified upstream failure onto the facade's
// status codes.
func respondUpstreamError(c *gin.Context, err error) {
	var apiErr *domain.APIError
	message := ""
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	}

	switch domain.Classify(err) {
	case domain.KindValidation:
		if message == "" {
			message = "Invalid request"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
	case domain.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Membership service unavailable"})
	}
}

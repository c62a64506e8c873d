package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// CapabilityHandlers serves the plan-gated capabilities behind the feature
// gate: the membership card, the certificate, offer redemption and deal
// posting. Each handler renders from the live identity; the gate middleware
// has already decided access by the time these run.
type CapabilityHandlers struct {
	sessions domain.SessionReader
}

// NewCapabilityHandlers creates new capability handlers
func NewCapabilityHandlers(sessions domain.SessionReader) *CapabilityHandlers {
	return &CapabilityHandlers{sessions: sessions}
}

// RedeemRequest represents an offer redemption submission
type RedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// DealRequest represents a merchant deal submission
type DealRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ValidUntil  string `json:"valid_until" binding:"required"`
}

// Card renders the membership card payload
func (h *CapabilityHandlers) Card(c *gin.Context) {
	identity := h.sessions.Snapshot().Identity
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	card := gin.H{
		"member_id": identity.ID,
		"name":      identity.Name,
		"plan":      identity.PlanKey,
		"lifetime":  identity.Lifetime,
	}
	if identity.PlanExpiresAt != nil {
		card["valid_until"] = identity.PlanExpiresAt.Format("2006-01-02")
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"card": card}})
}

// Certificate renders the membership certificate payload
func (h *CapabilityHandlers) Certificate(c *gin.Context) {
	identity := h.sessions.Snapshot().Identity
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"certificate": gin.H{
		"member_id": identity.ID,
		"name":      identity.Name,
		"plan":      identity.PlanKey,
		"issued_at": time.Now().UTC().Format("2006-01-02"),
	}}})
}

// RedeemOffer accepts an offer redemption
func (h *CapabilityHandlers) RedeemOffer(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"message":  "Offer redemption recorded",
		"offer_id": c.Param("id"),
	}})
}

// PostDeal accepts a merchant deal submission
func (h *CapabilityHandlers) PostDeal(c *gin.Context) {
	var req DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{
		"message": "Deal submitted for review",
		"title":   req.Title,
	}})
}

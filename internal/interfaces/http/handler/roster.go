package handler

import (
	"github.com/gin-gonic/gin"
	rosterapp "github.com/sattv/backend/internal/application/roster"
)

// RosterHandler handles roster reconciliation endpoints
type RosterHandler struct {
	BaseHandler
	rosterService *rosterapp.Service
}

// NewRosterHandler creates a new RosterHandler
func NewRosterHandler(rosterService *rosterapp.Service) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// ReconcileRequest carries a pasted provider roster, one entry per line
type ReconcileRequest struct {
	Text string `json:"text" binding:"required"`
}

// Reconcile diffs a pasted roster against the active customer base
func (h *RosterHandler) Reconcile(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries := rosterapp.ParseEntries(req.Text)
	if len(entries) == 0 {
		h.BadRequest(c, "roster has no usable entries")
		return
	}

	report, err := h.rosterService.Reconcile(c.Request.Context(), tenantID, entries)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// RegisterRoutes registers roster routes
func (h *RosterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/roster")
	{
		group.POST("/reconcile", h.Reconcile)
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	renewalapp "github.com/sattv/backend/internal/application/renewal"
)

// SubscriptionHandler handles subscription renewal endpoints
type SubscriptionHandler struct {
	BaseHandler
	renewalService *renewalapp.Service
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(renewalService *renewalapp.Service) *SubscriptionHandler {
	return &SubscriptionHandler{renewalService: renewalService}
}

// Settle rolls one subscription forward by one cycle and records the
// payment. Lapsed cycles are caught up by calling this repeatedly.
func (h *SubscriptionHandler) Settle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	operatorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	subscriptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subscription ID")
		return
	}

	result, err := h.renewalService.Settle(c.Request.Context(), tenantID, subscriptionID, operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers subscription routes
func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/subscriptions")
	{
		group.POST("/:id/settle", h.Settle)
	}
}

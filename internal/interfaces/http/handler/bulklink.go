package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sattv/backend/internal/application/bulklink"
	"github.com/sattv/backend/internal/infrastructure/config"
	"github.com/sattv/backend/internal/infrastructure/recordtext"
)

// BulkLinkHandler handles bulk equipment linkage endpoints
type BulkLinkHandler struct {
	BaseHandler
	service *bulklink.Service
	batch   config.BatchConfig
}

// NewBulkLinkHandler creates a new BulkLinkHandler
func NewBulkLinkHandler(service *bulklink.Service, batch config.BatchConfig) *BulkLinkHandler {
	return &BulkLinkHandler{
		service: service,
		batch:   batch,
	}
}

// BulkLinkRequest represents a pasted block of text plus batch defaults
type BulkLinkRequest struct {
	Text              string `json:"text" binding:"required"`
	Format            string `json:"format" binding:"omitempty,oneof=labeled name_login_nds name_neighborhood_charge"`
	DefaultAmount     string `json:"default_amount" binding:"max=20"`
	DefaultDueDay     int    `json:"default_due_day" binding:"min=0,max=31"`
	DefaultChargeType string `json:"default_charge_type" binding:"max=50"`
}

// ParsedRecordResponse is one candidate record as the parser read it
type ParsedRecordResponse struct {
	Section          int    `json:"section"`
	Name             string `json:"name"`
	Neighborhood     string `json:"neighborhood,omitempty"`
	Login            string `json:"login,omitempty"`
	EquipmentCode    string `json:"equipment_code,omitempty"`
	SmartCard        string `json:"smart_card,omitempty"`
	SubscriptionCode string `json:"subscription_code,omitempty"`
	ChargeType       string `json:"charge_type,omitempty"`
	Amount           string `json:"amount"`
	DueDate          string `json:"due_date,omitempty"`
}

// ParseResponse is the dry-run view of a pasted batch
type ParseResponse struct {
	Records []ParsedRecordResponse `json:"records"`
	Total   int                    `json:"total"`
}

// Parse parses pasted text into candidate records without running them.
// Operators use this to preview what a run would attempt.
func (h *BulkLinkHandler) Parse(c *gin.Context) {
	var req BulkLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	records, err := h.service.Parse(toParseRequest(req), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := ParseResponse{
		Records: make([]ParsedRecordResponse, 0, len(records)),
		Total:   len(records),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, toParsedRecordResponse(rec))
	}

	h.Success(c, resp)
}

// Run parses the text and executes the batch sequentially. The response
// carries the per-record outcomes; a cancelled run reports the records
// completed before the cancellation.
func (h *BulkLinkHandler) Run(c *gin.Context) {
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

	var req BulkLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	if h.batch.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.batch.RunTimeout)
		defer cancel()
	}

	result, runErr := h.service.Run(ctx, tenantID, operatorID, bulklink.RunRequest{
		ParseRequest: toParseRequest(req),
		Delay:        h.batch.RecordDelay,
		MaxRecords:   h.batch.MaxRecords,
	})
	if result == nil {
		h.HandleError(c, runErr)
		return
	}

	h.Success(c, RunResponse{
		Result:    result,
		Cancelled: runErr != nil,
	})
}

// RunResponse wraps a batch result with its termination state
type RunResponse struct {
	*bulklink.Result
	Cancelled bool `json:"cancelled"`
}

// RegisterRoutes registers bulk linkage routes
func (h *BulkLinkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/bulk-link")
	{
		group.POST("/parse", h.Parse)
		group.POST("/run", h.Run)
	}
}

func toParseRequest(req BulkLinkRequest) bulklink.ParseRequest {
	return bulklink.ParseRequest{
		Text:              req.Text,
		Format:            req.Format,
		DefaultAmount:     req.DefaultAmount,
		DefaultDueDay:     req.DefaultDueDay,
		DefaultChargeType: req.DefaultChargeType,
	}
}

func toParsedRecordResponse(rec recordtext.CandidateRecord) ParsedRecordResponse {
	resp := ParsedRecordResponse{
		Section:          rec.Section,
		Name:             rec.Name,
		Neighborhood:     rec.Neighborhood,
		Login:            rec.Login,
		EquipmentCode:    rec.EquipmentCode,
		SmartCard:        rec.SmartCard,
		SubscriptionCode: rec.SubscriptionCode,
		ChargeType:       rec.ChargeType,
		Amount:           rec.Amount.StringFixed(2),
	}
	if !rec.DueDate.IsZero() {
		resp.DueDate = rec.DueDate.Format("2006-01-02")
	}
	return resp
}

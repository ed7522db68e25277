package bulklink

import (
	"github.com/sattv/backend/internal/infrastructure/recordtext"
)

// Per-record outcome codes
const (
	CodeLinked                 = "LINKED"
	CodeDuplicateBillingSkip   = "DUPLICATE_BILLING_SKIP"
	CodeCustomerNotFound       = "CUSTOMER_NOT_FOUND"
	CodeAmbiguousMatch         = "AMBIGUOUS_MATCH"
	CodeEquipmentNotFound      = "EQUIPMENT_NOT_FOUND"
	CodeEquipmentFieldMismatch = "EQUIPMENT_FIELD_MISMATCH"
	CodeLinkageError           = "LINKAGE_ERROR"
)

// Outcome is the per-record result of a batch run. DuplicateBillingSkip is
// informational and counts as success.
type Outcome struct {
	Success bool                       `json:"success"`
	Code    string                     `json:"code"`
	Message string                     `json:"message"`
	Record  recordtext.CandidateRecord `json:"-"`
	Raw     string                     `json:"record"`
}

// Result aggregates a full batch run
type Result struct {
	Outcomes  []Outcome `json:"outcomes"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

func successOutcome(rec recordtext.CandidateRecord, code, message string) Outcome {
	return Outcome{Success: true, Code: code, Message: message, Record: rec, Raw: rec.Raw}
}

func failureOutcome(rec recordtext.CandidateRecord, code, message string) Outcome {
	return Outcome{Success: false, Code: code, Message: message, Record: rec, Raw: rec.Raw}
}

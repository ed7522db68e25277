package recordtext

import (
	"time"

	"github.com/shopspring/decimal"
)

// CandidateRecord is the uniform in-memory form both input grammars produce.
// It carries raw extracted fields only; resolution against live records
// happens downstream. Records live for one batch run and are never persisted.
type CandidateRecord struct {
	Name             string
	Neighborhood     string
	Login            string
	EquipmentCode    string
	SmartCard        string
	SubscriptionCode string
	ChargeType       string
	Amount           decimal.Decimal
	DueDate          time.Time
	Section          int    // 1-based position in the source input
	Raw              string // original text, for result reporting
}

// Defaults supplies per-batch fallback values for grammars that do not carry
// amount, due date, or charge type per record.
type Defaults struct {
	Amount     decimal.Decimal
	DueDate    time.Time
	ChargeType string
}

// applyDefaults fills missing billing fields from the batch defaults.
func (r *CandidateRecord) applyDefaults(d Defaults) {
	if r.Amount.IsZero() && !d.Amount.IsZero() {
		r.Amount = d.Amount
	}
	if r.DueDate.IsZero() && !d.DueDate.IsZero() {
		r.DueDate = d.DueDate
	}
	if r.ChargeType == "" {
		r.ChargeType = d.ChargeType
	}
}

// IsComplete reports whether every field the decoder-linking step treats as
// mandatory is present. Incomplete records are silently dropped by the
// parsers; they never become candidates and are not counted as failures.
func (r *CandidateRecord) IsComplete() bool {
	return r.EquipmentCode != "" && r.IsChargeComplete()
}

// IsChargeComplete is the completeness check for charge-only call sites,
// which carry no equipment code.
func (r *CandidateRecord) IsChargeComplete() bool {
	return r.Name != "" &&
		r.Amount.IsPositive() &&
		!r.DueDate.IsZero()
}

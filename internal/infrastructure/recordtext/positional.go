package recordtext

import (
	"strconv"
	"strings"
	"time"
)

// Layout fixes the column order of positional input for one call site.
type Layout int

const (
	// LayoutNameLoginEquipment maps columns to (name, login, equipment-code).
	// Billing fields come from the batch defaults.
	LayoutNameLoginEquipment Layout = iota

	// LayoutNameNeighborhoodCharge maps columns to
	// (name, neighborhood, due-day, amount, charge-type).
	LayoutNameNeighborhoodCharge
)

// ParsePositional parses line-per-record input. The field delimiter (tab or
// comma) is auto-detected from the first non-empty line. ref anchors bare
// due-day numbers to a month. Lines missing a mandatory field are silently
// dropped.
func ParsePositional(input string, layout Layout, defaults Defaults, ref time.Time) []CandidateRecord {
	var records []CandidateRecord
	delimiter := ""
	section := 0

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if delimiter == "" {
			delimiter = detectDelimiter(trimmed)
		}
		section++

		fields := splitFields(trimmed, delimiter)
		rec := recordFromFields(fields, layout, ref)
		rec.Section = section
		rec.Raw = trimmed
		rec.applyDefaults(defaults)
		if !complete(&rec, layout) {
			continue
		}
		records = append(records, rec)
	}

	return records
}

func complete(rec *CandidateRecord, layout Layout) bool {
	if layout == LayoutNameNeighborhoodCharge {
		return rec.IsChargeComplete()
	}
	return rec.IsComplete()
}

func detectDelimiter(firstLine string) string {
	if strings.Contains(firstLine, "\t") {
		return "\t"
	}
	return ","
}

func splitFields(line, delimiter string) []string {
	parts := strings.Split(line, delimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func recordFromFields(fields []string, layout Layout, ref time.Time) CandidateRecord {
	var rec CandidateRecord
	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	switch layout {
	case LayoutNameLoginEquipment:
		rec.Name = get(0)
		rec.Login = get(1)
		rec.EquipmentCode = get(2)
	case LayoutNameNeighborhoodCharge:
		rec.Name = get(0)
		rec.Neighborhood = get(1)
		if day, err := strconv.Atoi(get(2)); err == nil {
			if due, ok := DueDateFromDay(day, ref); ok {
				rec.DueDate = due
			}
		}
		if amount, ok := ParseAmount(get(3)); ok {
			rec.Amount = amount
		}
		rec.ChargeType = get(4)
	}
	return rec
}

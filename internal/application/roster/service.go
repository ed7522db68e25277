package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/customer"
	"github.com/sattv/backend/internal/domain/matching"
	"go.uber.org/zap"
)

// Entry is one externally supplied roster line
type Entry struct {
	Name         string `json:"name"`
	Neighborhood string `json:"neighborhood"`
}

// MatchedPair ties a roster entry to the customer it matched
type MatchedPair struct {
	Entry    Entry              `json:"entry"`
	Customer *customer.Customer `json:"customer"`
}

// Report is the three-way diff between a roster and the active customers
type Report struct {
	Matched    []MatchedPair       `json:"matched"`
	RosterOnly []Entry             `json:"roster_only"`
	SystemOnly []customer.Customer `json:"system_only"`

	TotalRoster     int `json:"total_roster"`
	TotalCustomers  int `json:"total_customers"`
	MatchedCount    int `json:"matched_count"`
	RosterOnlyCount int `json:"roster_only_count"`
	SystemOnlyCount int `json:"system_only_count"`
}

// Service produces roster reconciliation reports
type Service struct {
	customerRepo customer.Repository
	logger       *zap.Logger
}

// NewService creates a new roster Service
func NewService(customerRepo customer.Repository, logger *zap.Logger) *Service {
	return &Service{customerRepo: customerRepo, logger: logger}
}

// ParseEntries splits pasted roster text into entries, one per line. The
// first column is the name, the second the neighborhood; tab-delimited if
// the text contains tabs, comma-delimited otherwise.
func ParseEntries(text string) []Entry {
	delimiter := ","
	if strings.Contains(text, "\t") {
		delimiter = "\t"
	}

	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entry := Entry{Name: line}
		if name, neighborhood, ok := strings.Cut(line, delimiter); ok {
			entry.Name = strings.TrimSpace(name)
			entry.Neighborhood = strings.TrimSpace(neighborhood)
		}
		if entry.Name != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Reconcile diffs the roster against the tenant's active customers using
// the same name and neighborhood matcher the bulk linker uses. Lookup is
// indexed by normalized name with a linear scan fallback, so accent and
// spelling variants still pair up.
func (s *Service) Reconcile(ctx context.Context, tenantID uuid.UUID, entries []Entry) (*Report, error) {
	customers, err := s.customerRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("loading customers: %w", err)
	}

	byName := make(map[string][]*customer.Customer, len(customers))
	for i := range customers {
		key := matching.Normalize(customers[i].Name)
		byName[key] = append(byName[key], &customers[i])
	}

	report := &Report{
		TotalRoster:    len(entries),
		TotalCustomers: len(customers),
	}

	for _, entry := range entries {
		match := findMatch(entry, byName, customers)
		if match == nil {
			report.RosterOnly = append(report.RosterOnly, entry)
			continue
		}
		report.Matched = append(report.Matched, MatchedPair{Entry: entry, Customer: match})
	}

	// The reverse pass is independent of the forward pairing: a customer is
	// system-only iff no roster entry matches it at all. One entry can
	// thereby vouch for more than one similarly named customer.
	for i := range customers {
		if !matchesAnyEntry(&customers[i], entries) {
			report.SystemOnly = append(report.SystemOnly, customers[i])
		}
	}

	report.MatchedCount = len(report.Matched)
	report.RosterOnlyCount = len(report.RosterOnly)
	report.SystemOnlyCount = len(report.SystemOnly)

	s.logger.Info("roster reconciled",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("matched", report.MatchedCount),
		zap.Int("roster_only", report.RosterOnlyCount),
		zap.Int("system_only", report.SystemOnlyCount))

	return report, nil
}

func findMatch(entry Entry, byName map[string][]*customer.Customer, customers []customer.Customer) *customer.Customer {
	candidates := byName[matching.Normalize(entry.Name)]
	if len(candidates) == 0 {
		for i := range customers {
			if matching.NamesMatch(entry.Name, customers[i].Name) {
				candidates = append(candidates, &customers[i])
			}
		}
	}

	for _, c := range candidates {
		if matching.NeighborhoodsMatch(entry.Neighborhood, c.Neighborhood) {
			return c
		}
	}
	return nil
}

func matchesAnyEntry(c *customer.Customer, entries []Entry) bool {
	for _, entry := range entries {
		if matching.NamesMatch(entry.Name, c.Name) &&
			matching.NeighborhoodsMatch(entry.Neighborhood, c.Neighborhood) {
			return true
		}
	}
	return false
}

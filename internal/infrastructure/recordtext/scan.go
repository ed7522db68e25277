package recordtext

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// amountPattern tolerates an optional currency symbol, thousands separators,
// and either comma or dot as the decimal mark ("R$ 1.234,56", "45,00", "45.00").
var amountPattern = regexp.MustCompile(`(?i)(?:r\$|\$)?\s*(\d{1,3}(?:\.\d{3})+,\d{2}|\d+[.,]\d{1,2}|\d+)`)

// datePattern matches day/month/year dates with /, - or . separators.
var datePattern = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2,4})`)

// ParseAmount extracts the first currency-tolerant numeric value from s.
// Returns decimal.Zero and false when no amount is found.
func ParseAmount(s string) (decimal.Decimal, bool) {
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, false
	}
	raw := m[1]
	if strings.Contains(raw, ",") {
		// Brazilian format: dots are thousands separators, comma is decimal
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// ParseDate extracts the first day/month/year date from s.
// Two-digit years are taken as 20xx. Returns the zero time and false when no
// valid date is found.
func ParseDate(s string) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day := atoi(m[1])
	month := atoi(m[2])
	year := atoi(m[3])
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// reject normalized overflow such as 31/02
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// DueDateFromDay resolves a bare due-day number against a reference month,
// clamping to the month's last day.
func DueDateFromDay(day int, ref time.Time) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	year, month, _ := ref.Date()
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

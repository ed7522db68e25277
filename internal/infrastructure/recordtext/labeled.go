package recordtext

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sattv/backend/internal/domain/matching"
)

// labelSetters maps a normalized label prefix to the field it fills.
// Labels are the Portuguese forms customers actually paste from messaging
// apps, plus English synonyms seen in exported sheets.
var labelSetters = map[string]func(*CandidateRecord, string){
	"nome":               setName,
	"cliente":            setName,
	"name":               setName,
	"bairro":             setNeighborhood,
	"neighborhood":       setNeighborhood,
	"login":              setLogin,
	"usuario":            setLogin,
	"nds":                setEquipmentCode,
	"decoder":            setEquipmentCode,
	"decoder id":         setEquipmentCode,
	"decodificador":      setEquipmentCode,
	"aparelho":           setEquipmentCode,
	"equipamento":        setEquipmentCode,
	"serial":             setEquipmentCode,
	"cartao":             setSmartCard,
	"smart card":         setSmartCard,
	"smartcard":          setSmartCard,
	"sc":                 setSmartCard,
	"plano":              setSubscriptionCode,
	"assinatura":         setSubscriptionCode,
	"subscription":       setSubscriptionCode,
	"codigo do plano":    setSubscriptionCode,
	"tipo":               setChargeType,
	"cobranca":           setChargeType,
	"tipo de cobranca":   setChargeType,
	"charge type":        setChargeType,
	"valor":              setAmount,
	"mensalidade":        setAmount,
	"amount":             setAmount,
	"vencimento":         setDueDate,
	"venc":               setDueDate,
	"vcto":               setDueDate,
	"due date":           setDueDate,
	"data de vencimento": setDueDate,
}

func setName(r *CandidateRecord, v string)             { r.Name = v }
func setNeighborhood(r *CandidateRecord, v string)     { r.Neighborhood = v }
func setLogin(r *CandidateRecord, v string)            { r.Login = v }
func setEquipmentCode(r *CandidateRecord, v string)    { r.EquipmentCode = v }
func setSmartCard(r *CandidateRecord, v string)        { r.SmartCard = v }
func setSubscriptionCode(r *CandidateRecord, v string) { r.SubscriptionCode = v }
func setChargeType(r *CandidateRecord, v string)       { r.ChargeType = v }

func setAmount(r *CandidateRecord, v string) {
	if amount, ok := ParseAmount(v); ok {
		r.Amount = amount
	}
}

func setDueDate(r *CandidateRecord, v string) {
	if d, ok := ParseDate(v); ok {
		r.DueDate = d
	}
}

// sectionMarkers are glyphs that open a new record when a line starts with one.
var sectionMarkers = []rune{'➡', '▶', '►', '📌', '👉'}

// ParseLabeled parses labeled-block text into candidate records. Sections are
// separated by a literal separator line (dashes and the like) or a leading
// marker glyph. Sections missing a mandatory field are silently dropped.
func ParseLabeled(input string, defaults Defaults) []CandidateRecord {
	var records []CandidateRecord
	section := 0
	current := newSectionBuilder()

	flush := func() {
		if rec, ok := current.build(defaults); ok {
			records = append(records, rec)
		}
		current = newSectionBuilder()
	}

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isSeparatorLine(trimmed) {
			flush()
			continue
		}
		if startsNewSection(trimmed) && !current.empty() {
			flush()
		}
		if current.empty() {
			section++
			current.section = section
		}
		current.addLine(trimmed)
	}
	flush()

	return records
}

type sectionBuilder struct {
	record  CandidateRecord
	lines   []string
	section int
}

func newSectionBuilder() *sectionBuilder {
	return &sectionBuilder{}
}

func (b *sectionBuilder) empty() bool {
	return len(b.lines) == 0
}

func (b *sectionBuilder) addLine(line string) {
	b.lines = append(b.lines, line)

	stripped := stripBullets(line)
	label, value, found := strings.Cut(stripped, ":")
	if !found {
		return
	}
	setter, ok := labelSetters[matching.Normalize(label)]
	if !ok {
		return
	}
	setter(&b.record, strings.TrimSpace(value))
}

func (b *sectionBuilder) build(defaults Defaults) (CandidateRecord, bool) {
	if b.empty() {
		return CandidateRecord{}, false
	}
	rec := b.record
	rec.Section = b.section
	rec.Raw = strings.Join(b.lines, "\n")
	rec.applyDefaults(defaults)
	if !rec.IsComplete() {
		return CandidateRecord{}, false
	}
	return rec, true
}

// isSeparatorLine reports whether the trimmed line is a run of separator
// punctuation such as "-----" or "=====".
func isSeparatorLine(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		switch r {
		case '-', '=', '_', '*', '—':
		default:
			return false
		}
	}
	return true
}

// startsNewSection reports whether the line opens a new record via a marker glyph.
func startsNewSection(trimmed string) bool {
	first, _ := utf8.DecodeRuneInString(trimmed)
	for _, marker := range sectionMarkers {
		if first == marker {
			return true
		}
	}
	return false
}

// stripBullets removes decorative bullet and emoji characters that precede the
// label on a line, so "🔹 Nome: X" and "- Nome: X" match the same label.
func stripBullets(line string) string {
	return strings.TrimLeftFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

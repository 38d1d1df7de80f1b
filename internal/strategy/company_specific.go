package strategy

import (
	"regexp"
	"strings"

	"invext/internal/domain"
	"invext/internal/patterns"
)

// germanCorporateMarkers indicate a German corporate letterhead; two or
// more admit the document even without a known fingerprint.
var germanCorporateMarkers = []string{"GmbH", "AG", "straße", "strasse", "·"}

// personName matches a two-to-four word capitalized name line, the
// shape of a recipient printed without any label in a letter window.
var personName = regexp.MustCompile(`^(?:Herrn?|Frau)?\s*[A-ZÄÖÜ][a-zäöüß]+(?:\s+[A-ZÄÖÜ][a-zäöüß.-]+){1,3}$`)

// recipientWindowSkip lists substrings that disqualify a window line
// from being the recipient name.
var recipientWindowSkip = []string{
	"GmbH", "AG", "Rechnung", "Invoice", "Datum", "Date",
	"Nummer", "Number", "Kunden", "Customer", "Seite", "Page",
	"straße", "strasse", "Postfach",
}

// CompanySpecific extracts from known vendors whose documents carry no
// usable party labels. The sender is recognized by fingerprint, the
// recipient by its position in the address window of the letterhead.
type CompanySpecific struct{}

func (s *CompanySpecific) ID() domain.StrategyID { return domain.StrategyCompanySpecific }

func (s *CompanySpecific) CanHandle(doc *domain.Document) bool {
	for _, fp := range patterns.CompanyFingerprints {
		if strings.Contains(doc.Text, fp) {
			return true
		}
	}
	markers := 0
	for _, mk := range germanCorporateMarkers {
		if strings.Contains(doc.Text, mk) {
			markers++
		}
	}
	return markers >= 2
}

func (s *CompanySpecific) Parse(doc *domain.Document) domain.FieldMap {
	m := domain.NewFieldMap()

	senderIdx := s.findSender(doc, m)
	s.findSenderAddress(doc, senderIdx, m)
	s.findRecipient(doc, m)

	currency := extractCurrency(doc.Text)
	m.Set(domain.FieldCurrency, currency)
	m.Set(domain.FieldAmount, extractAmount(doc, currency))
	assignEmails(doc.Text, m)
	extractBanking(doc, m)
	return m
}

// findSender returns the line index of the sender, preferring a
// fingerprint line over the first corporate-suffixed line.
func (s *CompanySpecific) findSender(doc *domain.Document, m domain.FieldMap) int {
	for i, line := range doc.Lines {
		for _, fp := range patterns.CompanyFingerprints {
			if strings.Contains(line, fp) {
				m.Set(domain.FieldSender, senderFromLine(line, fp))
				return i
			}
		}
	}
	for i, line := range doc.Lines {
		if strings.Contains(line, "GmbH") || strings.HasSuffix(line, " AG") {
			m.Set(domain.FieldSender, strings.TrimSpace(line))
			return i
		}
	}
	return -1
}

// senderFromLine cuts the letterhead line down to the company segment.
// Letterhead rows often pack name and return address into one line
// separated by middle dots.
func senderFromLine(line, fingerprint string) string {
	if idx := strings.Index(line, "·"); idx >= 0 {
		seg := strings.TrimSpace(line[:idx])
		if strings.Contains(seg, fingerprint) {
			return seg
		}
	}
	return strings.TrimSpace(line)
}

func (s *CompanySpecific) findSenderAddress(doc *domain.Document, senderIdx int, m domain.FieldMap) {
	if senderIdx < 0 {
		return
	}
	// The return-address row may share the sender line after a middle
	// dot, or sit on the next line.
	line := doc.Lines[senderIdx]
	if idx := strings.Index(line, "·"); idx >= 0 {
		rest := strings.TrimSpace(line[idx+len("·"):])
		rest = strings.TrimSpace(strings.Trim(rest, "·"))
		rest = strings.ReplaceAll(rest, "·", ",")
		if patterns.IsAddressLine(rest) {
			m.Set(domain.FieldSenderAddress, rest)
			return
		}
	}
	if senderIdx+1 < len(doc.Lines) && patterns.IsAddressLine(doc.Lines[senderIdx+1]) {
		m.Set(domain.FieldSenderAddress, doc.Lines[senderIdx+1])
	}
}

// findRecipient scans the letter address window, lines 2 through 20,
// for a capitalized name line, then gathers up to three address lines
// under it.
func (s *CompanySpecific) findRecipient(doc *domain.Document, m domain.FieldMap) {
	end := len(doc.Lines)
	if end > 20 {
		end = 20
	}
	for i := 2; i < end; i++ {
		line := strings.TrimSpace(doc.Lines[i])
		if line == "" || !personName.MatchString(line) {
			continue
		}
		if containsAny(line, recipientWindowSkip) {
			continue
		}
		m.Set(domain.FieldRecipient, line)

		var addr []string
		for j := i + 1; j < len(doc.Lines) && len(addr) < 3; j++ {
			next := strings.TrimSpace(doc.Lines[j])
			if next == "" || patterns.IsSectionBoundary(next) {
				break
			}
			if patterns.IsAddressLine(next) {
				addr = append(addr, next)
			}
		}
		if len(addr) > 0 {
			m.Set(domain.FieldRecipientAddress, strings.Join(addr, ", "))
		}
		return
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package strategy

import (
	"strings"

	"invext/internal/domain"
	"invext/internal/patterns"
)

// PatternFallback is the last-resort strategy for unstructured text: no
// party labels, no known vendor. It leans entirely on universal
// patterns, so parties are resolved only from email heuristics and
// corporate-looking lines.
type PatternFallback struct{}

func (s *PatternFallback) ID() domain.StrategyID { return domain.StrategyPatternFallback }

// CanHandle admits only documents no structured strategy claims; when a
// label or fingerprint is present the structured variant is strictly
// better and the fallback would just add a low-confidence duplicate.
func (s *PatternFallback) CanHandle(doc *domain.Document) bool {
	for _, re := range twoColumnTriggers {
		if re.MatchString(doc.Text) {
			return false
		}
	}
	for _, line := range doc.Lines {
		for _, re := range singleColumnTriggers {
			if re.MatchString(line) {
				return false
			}
		}
	}
	for _, fp := range patterns.CompanyFingerprints {
		if strings.Contains(doc.Text, fp) {
			return false
		}
	}
	return true
}

func (s *PatternFallback) Parse(doc *domain.Document) domain.FieldMap {
	m := domain.NewFieldMap()

	assignEmails(doc.Text, m)
	s.partiesFromText(doc, m)

	currency := extractCurrency(doc.Text)
	m.Set(domain.FieldCurrency, currency)
	m.Set(domain.FieldAmount, extractAmount(doc, currency))
	extractBanking(doc, m)
	return m
}

// partiesFromText guesses the sender as the first corporate-suffixed
// line and, failing that, derives party names from email domains.
func (s *PatternFallback) partiesFromText(doc *domain.Document, m domain.FieldMap) {
	corporate := []string{"GmbH", "AG", "Inc", "Corp", "LLC", "Ltd"}
	for _, line := range doc.Lines {
		line = strings.TrimSpace(line)
		if line == "" || patterns.IsSectionBoundary(line) {
			continue
		}
		for _, suffix := range corporate {
			if strings.HasSuffix(line, suffix) || strings.Contains(line, " "+suffix+" ") {
				if !m.Resolved(domain.FieldSender) {
					m.Set(domain.FieldSender, line)
				}
				break
			}
		}
		if m.Resolved(domain.FieldSender) {
			break
		}
	}

	if !m.Resolved(domain.FieldSender) && m.Resolved(domain.FieldSenderEmail) {
		m.Set(domain.FieldSender, nameFromEmailDomain(m[domain.FieldSenderEmail]))
	}
}

// nameFromEmailDomain turns billing@acme-corp.com into "Acme Corp".
func nameFromEmailDomain(email string) string {
	at := strings.Index(email, "@")
	if at < 0 {
		return ""
	}
	domainPart := email[at+1:]
	if dot := strings.Index(domainPart, "."); dot > 0 {
		domainPart = domainPart[:dot]
	}
	words := strings.FieldsFunc(domainPart, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

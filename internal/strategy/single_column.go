package strategy

import (
	"regexp"

	"invext/internal/domain"
	"invext/internal/patterns"
)

// singleColumnTriggers admit documents that announce parties with
// dedicated section labels on their own lines. From:/To: headers are
// deliberately absent here; those belong to the dual-column shape.
var singleColumnTriggers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*Sender:`),
	regexp.MustCompile(`(?i)^\s*Recipient:`),
	regexp.MustCompile(`(?i)^\s*Absender:`),
	regexp.MustCompile(`(?i)^\s*Empfänger:`),
	regexp.MustCompile(`(?i)^\s*Rechnungsempfänger:`),
	regexp.MustCompile(`(?i)^\s*Von:`),
	regexp.MustCompile(`(?i)^\s*An:`),
}

// SingleColumnLabel extracts from linear documents where each party is
// introduced by an explicit label line and described by the block below
// it. Common for German invoices (Absender:/Empfänger:).
type SingleColumnLabel struct{}

func (s *SingleColumnLabel) ID() domain.StrategyID { return domain.StrategySingleColumn }

func (s *SingleColumnLabel) CanHandle(doc *domain.Document) bool {
	for _, line := range doc.Lines {
		for _, re := range singleColumnTriggers {
			if re.MatchString(line) {
				return true
			}
		}
	}
	return false
}

func (s *SingleColumnLabel) Parse(doc *domain.Document) domain.FieldMap {
	m := domain.NewFieldMap()

	if i, inline := patterns.FindLabel(doc.Lines, patterns.SenderLabels); i >= 0 {
		applyParty(m, readPartyBlock(doc.Lines, i, inline),
			domain.FieldSender, domain.FieldSenderAddress, domain.FieldSenderEmail)
	}
	if i, inline := patterns.FindLabel(doc.Lines, patterns.RecipientLabels); i >= 0 {
		applyParty(m, readPartyBlock(doc.Lines, i, inline),
			domain.FieldRecipient, domain.FieldRecipientAddress, domain.FieldRecipientEmail)
	}

	currency := extractCurrency(doc.Text)
	m.Set(domain.FieldCurrency, currency)
	m.Set(domain.FieldAmount, extractAmount(doc, currency))
	assignEmails(doc.Text, m)
	extractBanking(doc, m)
	return m
}

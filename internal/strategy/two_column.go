package strategy

import (
	"regexp"
	"strings"

	"invext/internal/banking"
	"invext/internal/domain"
	"invext/internal/patterns"
)

// twoColumnTriggers are the header tokens of a dual-party layout:
// sender and recipient blocks introduced side by side or stacked.
var twoColumnTriggers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bFrom:`),
	regexp.MustCompile(`(?i)\bTo:`),
	regexp.MustCompile(`(?i)\bBill\s+from:`),
	regexp.MustCompile(`(?i)\bBill\s+to:`),
}

// TwoColumn extracts from invoices that present sender and recipient as
// labeled blocks, either in two physical columns merged line-by-line by
// the text extractor or as consecutive stacked sections.
type TwoColumn struct{}

func (s *TwoColumn) ID() domain.StrategyID { return domain.StrategyTwoColumn }

func (s *TwoColumn) CanHandle(doc *domain.Document) bool {
	for _, re := range twoColumnTriggers {
		if re.MatchString(doc.Text) {
			return true
		}
	}
	return false
}

func (s *TwoColumn) Parse(doc *domain.Document) domain.FieldMap {
	m := domain.NewFieldMap()

	if i, inline := patterns.FindLabel(doc.Lines, patterns.SenderLabels); i >= 0 {
		applyParty(m, readPartyBlock(doc.Lines, i, inline),
			domain.FieldSender, domain.FieldSenderAddress, domain.FieldSenderEmail)
	}
	ri, inline := patterns.FindLabel(doc.Lines, patterns.RecipientLabels)
	if ri < 0 {
		ri, inline = s.findMidlineRecipient(doc, m)
	}
	if ri >= 0 {
		applyParty(m, readPartyBlock(doc.Lines, ri, inline),
			domain.FieldRecipient, domain.FieldRecipientAddress, domain.FieldRecipientEmail)
	}

	s.splitMergedRows(doc, m)

	currency := extractCurrency(doc.Text)
	m.Set(domain.FieldCurrency, currency)
	m.Set(domain.FieldAmount, extractAmount(doc, currency))
	assignEmails(doc.Text, m)
	extractBanking(doc, m)
	return m
}

// midlineRecipientLabels find a recipient label that is not at line
// start, the shape left when a two-column header row ("Acme GmbH
// Bill to:") is flattened by text extraction.
var midlineRecipientLabels = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Bill\s+to:\s*(.*)`),
	regexp.MustCompile(`(?i)Invoice\s+to:\s*(.*)`),
}

// findMidlineRecipient locates a recipient label inside a line. The
// text preceding the label belongs to the sender column when the
// sender is still unresolved.
func (s *TwoColumn) findMidlineRecipient(doc *domain.Document, m domain.FieldMap) (int, string) {
	for i, line := range doc.Lines {
		for _, re := range midlineRecipientLabels {
			loc := re.FindStringSubmatchIndex(line)
			if loc == nil {
				continue
			}
			prefix := strings.TrimSpace(line[:loc[0]])
			if prefix != "" && !m.Resolved(domain.FieldSender) {
				m.Set(domain.FieldSender, prefix)
			}
			return i, strings.TrimSpace(line[loc[2]:loc[3]])
		}
	}
	return -1, ""
}

// splitMergedRows resolves dual-column artifacts: a line holding two
// email addresses splits sender-left/recipient-right, and a line with
// two five-digit postal codes splits into two address fragments at the
// first code's end.
func (s *TwoColumn) splitMergedRows(doc *domain.Document, m domain.FieldMap) {
	for _, line := range doc.Lines {
		emails := patterns.ExtractEmails(line)
		if len(emails) == 2 && banking.IsValidEmail(emails[0]) && banking.IsValidEmail(emails[1]) {
			if !m.Resolved(domain.FieldSenderEmail) {
				m.Set(domain.FieldSenderEmail, emails[0])
			}
			if !m.Resolved(domain.FieldRecipientEmail) {
				m.Set(domain.FieldRecipientEmail, emails[1])
			}
			continue
		}

		zips := patterns.FiveDigitZip.FindAllStringIndex(line, -1)
		if len(zips) == 2 {
			left := strings.TrimSpace(line[:zips[0][1]])
			right := strings.TrimSpace(line[zips[0][1]:])
			if !m.Resolved(domain.FieldSenderAddress) && patterns.IsAddressLine(left) {
				m.Set(domain.FieldSenderAddress, left)
			}
			if !m.Resolved(domain.FieldRecipientAddress) && patterns.IsAddressLine(right) {
				m.Set(domain.FieldRecipientAddress, right)
			}
		}
	}
}

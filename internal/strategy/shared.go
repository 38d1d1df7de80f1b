package strategy

import (
	"fmt"
	"strings"

	"invext/internal/banking"
	"invext/internal/domain"
	"invext/internal/patterns"
)

// extractCurrency picks the invoice currency from symbols or ISO codes
// in the text. Symbols win over codes; EUR wins over USD when both
// appear, since German invoices often quote a USD reference price.
func extractCurrency(text string) string {
	switch {
	case strings.Contains(text, "€") || strings.Contains(text, "EUR"):
		return "EUR"
	case strings.Contains(text, "$") || strings.Contains(text, "USD"):
		return "USD"
	case strings.Contains(text, "£") || strings.Contains(text, "GBP"):
		return "GBP"
	}
	return ""
}

// extractAmount runs the amount patterns in order and returns the first
// candidate that normalizes to a positive value, formatted with two
// decimals. Currency and detected language steer separator handling.
func extractAmount(doc *domain.Document, currency string) string {
	lang := patterns.DetectLanguage(doc.Text)
	for _, re := range patterns.Amounts {
		for _, m := range re.FindAllStringSubmatch(doc.Text, -1) {
			a := banking.NormalizeAmount(m[1], currency, lang)
			if a.Valid {
				return fmt.Sprintf("%.2f", a.Value)
			}
		}
	}
	return ""
}

// extractBanking fills the banking fields from labeled identifiers,
// falling back to a bare-IBAN scan, then derives the payment method.
// Every identifier is checksum- or shape-validated before it is kept;
// a labeled match that fails validation is dropped, not repaired.
func extractBanking(doc *domain.Document, m domain.FieldMap) {
	if g := patterns.LabeledIBAN.FindStringSubmatch(doc.Text); g != nil {
		iban := banking.NormalizeIBAN(g[1])
		if banking.ValidateIBAN(iban) {
			m.Set(domain.FieldIBAN, iban)
		}
	}
	if !m.Resolved(domain.FieldIBAN) {
		for _, c := range patterns.UnlabeledIBAN.FindAllString(doc.Text, -1) {
			iban := banking.NormalizeIBAN(c)
			if banking.ValidateIBAN(iban) {
				m.Set(domain.FieldIBAN, iban)
				break
			}
		}
	}

	if g := patterns.LabeledBIC.FindStringSubmatch(doc.Text); g != nil {
		bic := strings.ToUpper(strings.TrimSpace(g[1]))
		if banking.ValidateBIC(bic) {
			m.Set(domain.FieldBIC, bic)
		}
	}

	for _, re := range patterns.BankNames {
		if g := re.FindStringSubmatch(doc.Text); g != nil {
			m.Set(domain.FieldBankName, strings.TrimSpace(g[1]))
			break
		}
	}

	if g := patterns.LabeledRouting.FindStringSubmatch(doc.Text); g != nil {
		if banking.ValidateABARouting(g[1]) {
			m.Set(domain.FieldRoutingNumber, g[1])
		}
	}
	if g := patterns.LabeledAccount.FindStringSubmatch(doc.Text); g != nil {
		m.Set(domain.FieldAccountNumber, strings.TrimSpace(g[1]))
	}
	if g := patterns.LabeledSortCode.FindStringSubmatch(doc.Text); g != nil {
		if sc, ok := banking.NormalizeSortCode(g[1]); ok {
			m.Set(domain.FieldSortCode, sc)
		}
	}

	extractPaymentAddress(doc, m)
	m.Set(domain.FieldPaymentMethod, detectPaymentMethod(m))
}

// detectPaymentMethod derives the scheme from which rails are present.
// An IBAN implies a credit transfer: SEPA inside the zone, the
// international variant outside it. A US routing number alone implies
// ACH and a UK sort code alone implies BACS; an account number is not
// required, it only ever appears alongside one of those identifiers.
// The IBAN outranks both when they coexist.
func detectPaymentMethod(m domain.FieldMap) string {
	if m.Resolved(domain.FieldIBAN) {
		if banking.IsSEPACountry(m[domain.FieldIBAN][:2]) {
			return domain.PaymentMethodSEPA
		}
		return domain.PaymentMethodSEPAInternational
	}
	if m.Resolved(domain.FieldRoutingNumber) {
		return domain.PaymentMethodACH
	}
	if m.Resolved(domain.FieldSortCode) {
		return domain.PaymentMethodBACS
	}
	return ""
}

// extractPaymentAddress collects the block under a PAYMENT ADDRESS
// header: consecutive lines until a blank line or the next labeled
// header, at most five lines, joined with ", ". Keyword boundaries are
// not applied inside the block because payee names legitimately
// contain words like "Payments".
func extractPaymentAddress(doc *domain.Document, m domain.FieldMap) {
	start := -1
	for i, line := range doc.Lines {
		if patterns.PaymentAddressHeader.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return
	}

	var parts []string
	for i := start; i < len(doc.Lines) && len(parts) < 5; i++ {
		line := strings.TrimSpace(doc.Lines[i])
		if line == "" || strings.HasSuffix(line, ":") {
			break
		}
		parts = append(parts, line)
	}
	if len(parts) > 0 {
		m.Set(domain.FieldPaymentAddress, strings.Join(parts, ", "))
	}
}

// assignEmails distributes detected email addresses to sender and
// recipient by local-part heuristics: generic company prefixes such as
// billing@ or info@ identify the issuer, the rest go to the customer.
func assignEmails(text string, m domain.FieldMap) {
	for _, e := range patterns.ExtractEmails(text) {
		if !banking.IsValidEmail(e) {
			continue
		}
		if patterns.IsSenderEmail(e) {
			if !m.Resolved(domain.FieldSenderEmail) {
				m.Set(domain.FieldSenderEmail, e)
			}
		} else if !m.Resolved(domain.FieldRecipientEmail) {
			m.Set(domain.FieldRecipientEmail, e)
		}
	}
	// A lone generic address still tells us who sent the invoice; a
	// lone personal one does not disambiguate and is left alone.
}

// partyBlock is the parsed form of a labeled party section: the name on
// or under the label line, then address lines, then an optional email.
type partyBlock struct {
	name    string
	address string
	email   string
}

// readPartyBlock parses the block starting at the label line. inline is
// the remainder captured after the label; when empty the name is the
// first non-empty following line. The block ends at a blank line, a
// section boundary, or another party label.
func readPartyBlock(lines []string, labelIdx int, inline string) partyBlock {
	var b partyBlock
	i := labelIdx + 1

	name := strings.TrimSpace(inline)
	if name == "" {
		for ; i < len(lines); i++ {
			line := strings.TrimSpace(lines[i])
			if line == "" {
				return b
			}
			if isPartyLabel(line) || patterns.IsSectionBoundary(line) {
				return b
			}
			if emails := patterns.ExtractEmails(line); len(emails) == 1 {
				b.email = emails[0]
				continue
			} else if len(emails) > 1 {
				// Merged dual-column row; the column splitter owns it.
				continue
			}
			name = line
			i++
			break
		}
	}
	b.name = name

	var addr []string
	for ; i < len(lines) && len(addr) < 4; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || isPartyLabel(line) || patterns.IsSectionBoundary(line) {
			break
		}
		if emails := patterns.ExtractEmails(line); len(emails) == 1 {
			if b.email == "" {
				b.email = emails[0]
			}
			continue
		} else if len(emails) > 1 {
			continue
		}
		if patterns.IsAddressLine(line) {
			addr = append(addr, line)
		}
	}
	b.address = strings.Join(addr, ", ")
	return b
}

func isPartyLabel(line string) bool {
	return patterns.MatchesAnyLabel(line, patterns.SenderLabels) ||
		patterns.MatchesAnyLabel(line, patterns.RecipientLabels)
}

// applyParty writes a parsed block into the field map under the given
// name/address/email field triple, skipping whatever is empty.
func applyParty(m domain.FieldMap, b partyBlock, name, address, email domain.Field) {
	m.Set(name, b.name)
	m.Set(address, b.address)
	if b.email != "" && banking.IsValidEmail(b.email) {
		m.Set(email, b.email)
	}
}

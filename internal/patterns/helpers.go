package patterns

import (
	"regexp"
	"strings"
)

// German and English indicator words for language detection. Counted,
// not weighted; the larger count wins with English as the tie default.
var (
	germanIndicators = []string{
		"Rechnung", "Rechnungsnummer", "Absender", "Rechnungsempfänger",
		"Gesamtbetrag", "Rechnungsbetrag", "MwSt", "Mehrwertsteuer",
		"Zahlungsbedingungen", "Fälligkeitsdatum", "Kundennummer",
		"straße", "strasse", "GmbH", "AG",
	}
	englishIndicators = []string{
		"Invoice", "Bill to", "From:", "To:", "Amount Due",
		"Total Amount", "Payment Terms", "Due Date", "Customer",
		"Street", "Avenue", "Road", "Inc", "Corp", "LLC",
	}

	senderEmailPrefixes = []string{
		"support@", "billing@", "info@", "invoices@",
		"accounts@", "sales@", "contact@", "hello@",
	}
)

// DetectLanguage returns "de" or "en" based on indicator keyword counts.
func DetectLanguage(text string) string {
	german, english := 0, 0
	for _, w := range germanIndicators {
		if strings.Contains(text, w) {
			german++
		}
	}
	for _, w := range englishIndicators {
		if strings.Contains(text, w) {
			english++
		}
	}
	if german > english {
		return "de"
	}
	return "en"
}

// FindLabel scans lines for the first match of any pattern and returns
// the line index and the captured remainder (may be empty). Index -1
// means no label was found.
func FindLabel(lines []string, labels []*regexp.Regexp) (int, string) {
	for i, line := range lines {
		for _, re := range labels {
			if m := re.FindStringSubmatch(line); m != nil {
				return i, strings.TrimSpace(m[1])
			}
		}
	}
	return -1, ""
}

// MatchesAnyLabel reports whether the line starts with any of the
// given label patterns.
func MatchesAnyLabel(line string, labels []*regexp.Regexp) bool {
	for _, re := range labels {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// ExtractEmails returns all email candidates in the text, in order.
func ExtractEmails(text string) []string {
	return Email.FindAllString(text, -1)
}

// IsSenderEmail classifies an address as belonging to the issuing
// company rather than the customer, by its local-part prefix.
func IsSenderEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, p := range senderEmailPrefixes {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsAddressLine reports whether a line looks like part of a postal
// address: postal code, street shape, country name, or a capitalized
// place name that is not a label.
func IsAddressLine(line string) bool {
	if len(line) < 3 {
		return false
	}
	for _, re := range PostalCodes {
		if re.MatchString(line) {
			return true
		}
	}
	for _, re := range Streets {
		if re.MatchString(line) {
			return true
		}
	}
	if ContainsCountry(line) {
		return true
	}
	if capitalizedPlace.MatchString(line) && !strings.HasSuffix(line, ":") {
		return true
	}
	return false
}

var (
	capitalizedPlace = regexp.MustCompile(`[A-Z][a-z]+(?:,?\s+[A-Z][a-z]+)+`)
	horizontalRule   = regexp.MustCompile(`^[-=_]{3,}$`)
)

// boundaryKeywords end an address block when they appear in a line.
var boundaryKeywords = []string{
	"invoice", "description", "item", "quantity", "price",
	"amount", "total", "subtotal", "tax", "vat", "mwst",
	"payment", "due", "date", "number", "reference",
}

// IsSectionBoundary reports whether a line terminates an address or
// party block: a header line, a known section keyword, or a rule.
func IsSectionBoundary(line string) bool {
	if strings.HasSuffix(line, ":") {
		return true
	}
	if line == strings.ToUpper(line) && len(line) > 3 && strings.ContainsAny(line, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range boundaryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return horizontalRule.MatchString(line)
}

// ContainsCountry reports whether the line names a known country.
func ContainsCountry(line string) bool {
	for _, c := range Countries {
		if strings.Contains(line, c) {
			return true
		}
	}
	return false
}

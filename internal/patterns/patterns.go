// Package patterns is the catalog of regular expressions and label
// vocabularies strategies use to locate candidate substrings. It holds
// no state; every pattern is compiled once at init.
package patterns

import "regexp"

// Party label patterns, English and German. The capture group is the
// remainder of the line after the label and may be empty when the
// label sits on its own line.
var (
	SenderLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*From:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Invoice\s+from:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Sender:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Bill\s+from:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Absender:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Von:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Rechnungssteller:\s*(.*)`),
	}

	RecipientLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*To:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Bill\s+to:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Recipient:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Invoice\s+to:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Customer:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Rechnungsempfänger:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*An:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Empfänger:\s*(.*)`),
		regexp.MustCompile(`(?i)^\s*Kunde:\s*(.*)`),
	}
)

// Universal patterns.
var (
	Email = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)

	// Labeled banking identifiers. The IBAN group tolerates interior
	// spaces, removed before validation. Only horizontal whitespace is
	// allowed inside the group: the value never spans lines, and a
	// newline-crossing match would swallow the following label.
	LabeledIBAN = regexp.MustCompile(`(?i)IBAN[:\s]*([A-Z]{2}[ \t]?\d{2}(?:[ \t]?[A-Z0-9]{1,4}){3,8})`)
	LabeledBIC  = regexp.MustCompile(`(?i)(?:BIC|SWIFT)[:\s]*([A-Za-z]{6}[A-Za-z0-9]{2}(?:[A-Za-z0-9]{3})?)`)

	// UnlabeledIBAN catches bare account numbers in running text; the
	// mod-97 check decides whether a candidate is real.
	UnlabeledIBAN = regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`)

	// US and UK banking labels, with the vocabulary variants seen on
	// real invoices (ABA, RTN, Acct #, A/C, SC).
	LabeledRouting  = regexp.MustCompile(`(?i)(?:Routing\s+(?:Number|No\.?)|ABA(?:\s+Number)?|RTN)\s*[:#]?\s*(\d{9})`)
	LabeledAccount  = regexp.MustCompile(`(?i)(?:Bank(?:ing)?\s+Account|Account\s+(?:Number|No\.?)|Acct\.?\s*#?|A/C)\s*[:#]?\s*(\d{6,18})`)
	LabeledSortCode = regexp.MustCompile(`(?i)(?:Sort\s+Code|SC)\s*[:#]?\s*(\d{2}[\s-]?\d{2}[\s-]?\d{2})`)

	PaymentAddressHeader = regexp.MustCompile(`(?i)PAYMENT\s+ADDRESS`)
)

// BankNames match institution names near banking sections, generic
// forms first, well-known German institutions as anchors.
var BankNames = []*regexp.Regexp{
	regexp.MustCompile(`Bank[:\s]+([A-Z][a-zA-Z\s&]+(?:Bank|AG|GmbH|Corp|Inc)[\w\s]*)`),
	regexp.MustCompile(`([A-Z][a-zA-Z\s]+(?:Bank|bank)[\w\s]*(?:AG|GmbH)?)`),
	regexp.MustCompile(`(Postbank[^:\n]*)`),
	regexp.MustCompile(`(Deutsche Bank[^:\n]*)`),
}

// Amounts locate a monetary value following a total/amount label or a
// currency symbol, English patterns before German ones.
var Amounts = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Total\s+Amount[:\s]*([€$£]?\s*\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
	regexp.MustCompile(`(?i)Amount\s+(?:Due|Invoice|Total)[:\s]+([€$£]?\s*\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
	regexp.MustCompile(`(?i)Invoice\s+Amount[:\s]+([€$£]?\s*\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
	regexp.MustCompile(`(?i)Amount[:\s]+([€$£]?\s*\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
	regexp.MustCompile(`(?i)€\s*(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})\s+(?:due|total)`),
	regexp.MustCompile(`\$\s*(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
	regexp.MustCompile(`£\s*(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
	regexp.MustCompile(`(?i)Gesamtbetrag[:\s]+(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
	regexp.MustCompile(`(?i)Rechnungsbetrag[:\s]+(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
	regexp.MustCompile(`(?i)Betrag[:\s]+(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
	regexp.MustCompile(`(?i)gross\s+amount\s+(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`),
}

// PostalCodes per country; used to recognize address lines and to find
// the split point of dual-column address rows.
var PostalCodes = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`),          // US, DE, FR
	regexp.MustCompile(`\b[A-Z]{1,2}\d{1,2}[A-Z]?\s*\d[A-Z]{2}\b`), // UK
	regexp.MustCompile(`\b\d{4}\s*[A-Z]{2}\b`),          // NL
	regexp.MustCompile(`\b\d{4}\b`),                     // AT, CH
}

// FiveDigitZip finds bare 5-digit codes; two on one line signal a
// two-column address row.
var FiveDigitZip = regexp.MustCompile(`\b\d{5}\b`)

// Streets recognize English, German and PO-box street lines.
var Streets = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+[A-Z]?\s+[A-Z][a-z]+\s+(?:Street|St\.?|Avenue|Ave\.?|Road|Rd\.?|Drive|Dr\.?|Lane|Ln\.?|Boulevard|Blvd\.?)`),
	regexp.MustCompile(`\b\d+\s+[A-Z][a-z]+\s+[A-Z][a-z]+\s+(?:Street|St\.?|Avenue|Ave\.?)`),
	regexp.MustCompile(`[A-Z][a-zäöüß]+(?:straße|strasse|weg|platz|allee)\s+\d+[A-Z]?`),
	regexp.MustCompile(`[A-Z][a-zäöüß]+\s+[A-Z][a-zäöüß]+(?:straße|strasse)\s+\d+`),
	regexp.MustCompile(`\bPMB\s+\d+`),
	regexp.MustCompile(`\bP\.?O\.?\s+Box\s+\d+`),
	regexp.MustCompile(`\bPostfach\s+\d+`),
}

// CompanyFingerprints trigger the vendor-specific strategy.
var CompanyFingerprints = []string{
	"Deutsche Bahn",
	"DB Vertrieb",
}

// Countries recognized on address lines, English and German names.
var Countries = []string{
	"Germany", "United States", "USA", "United Kingdom", "UK",
	"France", "Netherlands", "Belgium", "Austria", "Switzerland",
	"Italy", "Spain", "Portugal", "Sweden", "Denmark", "Norway",
	"Poland", "Czech Republic", "Ireland", "Canada",
	"Deutschland", "Vereinigte Staaten", "Großbritannien",
	"Frankreich", "Niederlande", "Belgien", "Österreich",
	"Schweiz", "Italien", "Spanien",
}

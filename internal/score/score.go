// Package score turns a FieldMap into a confidence value in [0,1].
// The weights encode which fields matter for downstream payment
// processing, and banking identifiers earn partial credit when present
// but failing their checksum, so a near-miss still beats nothing.
package score

import (
	"invext/internal/banking"
	"invext/internal/domain"
)

// Weights are the per-field contributions to the confidence score. The
// defaults sum to 1.0; custom weights are clamped after summation, not
// renormalized.
type Weights struct {
	Sender         float64
	Recipient      float64
	Amount         float64
	IBAN           float64
	IBANPartial    float64
	BIC            float64
	BICPartial     float64
	Currency       float64
	SenderEmail    float64
	RecipientEmail float64
	Address        float64
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{
		Sender:         0.20,
		Recipient:      0.20,
		Amount:         0.10,
		IBAN:           0.15,
		IBANPartial:    0.05,
		BIC:            0.15,
		BICPartial:     0.05,
		Currency:       0.05,
		SenderEmail:    0.05,
		RecipientEmail: 0.05,
		Address:        0.05,
	}
}

// Scorer computes confidence for extraction outputs. Zero value is not
// usable; construct with New.
type Scorer struct {
	w Weights
}

func New(w Weights) *Scorer {
	return &Scorer{w: w}
}

// Score evaluates a field map. Critical fields that are resolved but
// fail their quality check earn half their weight: a suspect value
// still beats nothing. Validity is re-checked here rather than trusted,
// so scores stay honest when a map comes from an external extractor
// that skipped validation. Emails earn their weight only when shaped
// like an address.
func (s *Scorer) Score(m domain.FieldMap) float64 {
	var c float64

	if m.Resolved(domain.FieldSender) {
		c += halfUnless(s.w.Sender, len(m[domain.FieldSender]) > 3)
	}
	if m.Resolved(domain.FieldRecipient) {
		c += halfUnless(s.w.Recipient, len(m[domain.FieldRecipient]) > 3)
	}
	if m.Resolved(domain.FieldAmount) {
		a := banking.NormalizeAmount(m[domain.FieldAmount], m[domain.FieldCurrency], "")
		c += halfUnless(s.w.Amount, a.Valid)
	}

	if m.Resolved(domain.FieldIBAN) {
		if banking.ValidateIBAN(banking.NormalizeIBAN(m[domain.FieldIBAN])) {
			c += s.w.IBAN
		} else {
			c += s.w.IBANPartial
		}
	}
	if m.Resolved(domain.FieldBIC) {
		if banking.ValidateBIC(m[domain.FieldBIC]) {
			c += s.w.BIC
		} else {
			c += s.w.BICPartial
		}
	}

	if m.Resolved(domain.FieldCurrency) {
		c += s.w.Currency
	}
	if m.Resolved(domain.FieldSenderEmail) && banking.IsValidEmail(m[domain.FieldSenderEmail]) {
		c += s.w.SenderEmail
	}
	if m.Resolved(domain.FieldRecipientEmail) && banking.IsValidEmail(m[domain.FieldRecipientEmail]) {
		c += s.w.RecipientEmail
	}
	if m.Resolved(domain.FieldSenderAddress) ||
		m.Resolved(domain.FieldRecipientAddress) ||
		m.Resolved(domain.FieldPaymentAddress) {
		c += s.w.Address
	}

	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func halfUnless(weight float64, ok bool) float64 {
	if ok {
		return weight
	}
	return weight / 2
}

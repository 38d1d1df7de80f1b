package ner

import (
	"fmt"
	"strings"

	"invext/internal/banking"
	"invext/internal/domain"
	"invext/internal/patterns"
)

// MapEntities turns a recognized entity list into a field map. The
// mapping is positional: the first organization is the sender (issuers
// head the letterhead), the next distinct one the recipient. A person
// fills the recipient slot only when no second organization did, and
// place entities become address fragments.
func MapEntities(entities []Entity, doc *domain.Document) domain.FieldMap {
	m := domain.NewFieldMap()

	var orgs []string
	var places []string
	for _, e := range entities {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		switch strings.ToUpper(e.Label) {
		case "ORG":
			if !containsFold(orgs, text) {
				orgs = append(orgs, text)
			}
		case "PERSON":
			if !m.Resolved(domain.FieldRecipient) {
				m.Set(domain.FieldRecipient, text)
			}
		case "MONEY":
			mapMoney(text, doc, m)
		case "GPE":
			places = append(places, text)
		}
	}

	if len(orgs) > 0 {
		m.Set(domain.FieldSender, orgs[0])
	}
	if len(orgs) > 1 {
		// A second organization outranks a person in the recipient slot.
		m.Set(domain.FieldRecipient, orgs[1])
	}
	if len(places) > 0 && !m.Resolved(domain.FieldRecipientAddress) {
		m.Set(domain.FieldRecipientAddress, strings.Join(places, ", "))
	}
	return m
}

func mapMoney(text string, doc *domain.Document, m domain.FieldMap) {
	if m.Resolved(domain.FieldAmount) {
		return
	}
	currency := currencyOf(text)
	if currency == "" {
		currency = currencyOf(doc.Text)
	}
	m.Set(domain.FieldCurrency, currency)

	lang := patterns.DetectLanguage(doc.Text)
	numeric := strings.TrimSpace(strings.TrimLeft(text, "€$£ "))
	a := banking.NormalizeAmount(numeric, currency, lang)
	if a.Valid {
		m.Set(domain.FieldAmount, formatAmount(a.Value))
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func currencyOf(text string) string {
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

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// Package layout classifies the document shape to reorder strategy
// evaluation. The category is advisory only: it permutes the order the
// selector walks, it never excludes a strategy, so a wrong
// classification costs a tie-break, not a field.
package layout

import (
	"strings"

	"invext/internal/domain"
	"invext/internal/patterns"
)

// Classifier assigns a layout category to a document.
type Classifier interface {
	Classify(doc *domain.Document) domain.LayoutCategory
}

// StrategyOrder returns the evaluation order suggested for a category.
// Each permutation keeps every strategy present; only the tie-break
// priority changes.
func StrategyOrder(cat domain.LayoutCategory) []domain.StrategyID {
	switch cat {
	case domain.LayoutTwoColumn:
		return []domain.StrategyID{
			domain.StrategyTwoColumn,
			domain.StrategySingleColumn,
			domain.StrategyCompanySpecific,
			domain.StrategyPatternFallback,
		}
	case domain.LayoutSingleColumn:
		return []domain.StrategyID{
			domain.StrategySingleColumn,
			domain.StrategyTwoColumn,
			domain.StrategyCompanySpecific,
			domain.StrategyPatternFallback,
		}
	case domain.LayoutCompanySpecific:
		return []domain.StrategyID{
			domain.StrategyCompanySpecific,
			domain.StrategyTwoColumn,
			domain.StrategySingleColumn,
			domain.StrategyPatternFallback,
		}
	case domain.LayoutUnstructured:
		return []domain.StrategyID{
			domain.StrategyPatternFallback,
			domain.StrategyTwoColumn,
			domain.StrategySingleColumn,
			domain.StrategyCompanySpecific,
		}
	}
	return StrategyOrder(domain.LayoutTwoColumn)
}

// RuleBased classifies by the same structural signals the strategies
// trigger on, checked in specificity order: a known vendor fingerprint
// beats generic labels, party labels beat raw text.
type RuleBased struct{}

func (RuleBased) Classify(doc *domain.Document) domain.LayoutCategory {
	for _, fp := range patterns.CompanyFingerprints {
		if strings.Contains(doc.Text, fp) {
			return domain.LayoutCompanySpecific
		}
	}

	fromTo := strings.Contains(doc.Text, "From:") || strings.Contains(doc.Text, "To:") ||
		strings.Contains(doc.Text, "Bill from:") || strings.Contains(doc.Text, "Bill to:")
	if fromTo {
		return domain.LayoutTwoColumn
	}

	for _, line := range doc.Lines {
		if patterns.MatchesAnyLabel(line, patterns.SenderLabels) ||
			patterns.MatchesAnyLabel(line, patterns.RecipientLabels) {
			return domain.LayoutSingleColumn
		}
	}
	return domain.LayoutUnstructured
}

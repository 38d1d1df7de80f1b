// Package strategy implements the rule-based extraction strategies.
// Each strategy is a pure function over a normalized document: a fast
// structural precondition plus a full field parse. CanHandle only
// skips strategies that cannot plausibly apply; a strategy it admits
// may still leave individual fields unresolved.
package strategy

import "invext/internal/domain"

// Strategy is one layout-specific extraction variant.
type Strategy interface {
	ID() domain.StrategyID
	CanHandle(doc *domain.Document) bool
	Parse(doc *domain.Document) domain.FieldMap
}

// Default returns the strategies in fixed priority order. The order is
// a total order: the selector breaks confidence ties by the earliest
// position in this list (or a layout-suggested permutation of it).
func Default() []Strategy {
	return []Strategy{
		&TwoColumn{},
		&SingleColumnLabel{},
		&CompanySpecific{},
		&PatternFallback{},
	}
}

// ByID returns the strategies permuted to the given ID order. IDs not
// present in the list are ignored; strategies missing from the order
// are appended in default order, so every strategy is always evaluated.
func ByID(order []domain.StrategyID) []Strategy {
	all := Default()
	byID := make(map[domain.StrategyID]Strategy, len(all))
	for _, s := range all {
		byID[s.ID()] = s
	}

	out := make([]Strategy, 0, len(all))
	seen := make(map[domain.StrategyID]bool, len(all))
	for _, id := range order {
		if s, ok := byID[id]; ok && !seen[id] {
			out = append(out, s)
			seen[id] = true
		}
	}
	for _, s := range all {
		if !seen[s.ID()] {
			out = append(out, s)
		}
	}
	return out
}

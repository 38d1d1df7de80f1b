// Package selector evaluates every applicable strategy against a
// document and picks the winner by confidence. Selection is
// deterministic: strategies are indexed by their position in the
// evaluation order, so equal confidence always resolves to the earliest
// strategy regardless of goroutine scheduling.
package selector

import (
	"context"
	"log"
	"sync"

	"invext/internal/domain"
	"invext/internal/score"
	"invext/internal/strategy"
)

// Selector runs the strategy tournament for one document.
type Selector struct {
	strategies []strategy.Strategy
	scorer     *score.Scorer
}

func New(strategies []strategy.Strategy, scorer *score.Scorer) *Selector {
	return &Selector{strategies: strategies, scorer: scorer}
}

type candidate struct {
	fields     domain.FieldMap
	confidence float64
	id         domain.StrategyID
}

// Select evaluates all strategies whose precondition admits the
// document, in parallel, and returns the highest-confidence result.
// When nothing applies the result carries StrategyUnresolved with an
// all-unresolved field map; that is a valid outcome, not an error.
func (s *Selector) Select(ctx context.Context, doc *domain.Document) domain.ExtractionResult {
	results := make([]*candidate, len(s.strategies))

	var wg sync.WaitGroup
	for i, st := range s.strategies {
		if !st.CanHandle(doc) {
			continue
		}
		wg.Add(1)
		go func(i int, st strategy.Strategy) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("selector.Selector: strategy %s panicked: %v", st.ID(), r)
				}
			}()
			fields := st.Parse(doc)
			results[i] = &candidate{
				fields:     fields,
				confidence: s.scorer.Score(fields),
				id:         st.ID(),
			}
		}(i, st)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		log.Printf("selector.Selector: context done during selection: %v", err)
	}

	best := -1
	for i, c := range results {
		if c == nil {
			continue
		}
		// Strict greater-than keeps the earliest strategy on ties.
		if best < 0 || c.confidence > results[best].confidence {
			best = i
		}
	}

	if best < 0 {
		return domain.ExtractionResult{
			Fields:     domain.NewFieldMap(),
			Confidence: 0,
			Source:     domain.StrategyUnresolved,
		}
	}

	win := results[best]
	log.Printf("selector.Selector: selected %s with confidence %.2f", win.id, win.confidence)
	return domain.ExtractionResult{
		Fields:     win.fields,
		Confidence: win.confidence,
		Source:     win.id,
	}
}

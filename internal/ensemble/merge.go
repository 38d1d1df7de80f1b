// Package ensemble combines the rule-based winner with the learned
// extractor's output. Merging is conservative: a resolved rule value is
// never replaced by Unresolved, and the learned side participates only
// when its own score clears the configured floor.
package ensemble

import (
	"log"

	"invext/internal/domain"
	"invext/internal/score"
)

// Merger folds a learned field map into a rule-based result.
type Merger struct {
	scorer        *score.Scorer
	preferRegex   bool
	minConfidence float64
}

// New builds a merger. preferRegex keeps resolved rule values even when
// the learned map disagrees; without it, a resolved rule value still
// yields only to a learned map whose score strictly exceeds the rule
// confidence. minConfidence is the score the learned map must reach
// before any of its values are used.
func New(scorer *score.Scorer, preferRegex bool, minConfidence float64) *Merger {
	return &Merger{
		scorer:        scorer,
		preferRegex:   preferRegex,
		minConfidence: minConfidence,
	}
}

// Merge returns the combined result. The confidence is recomputed on
// the merged map; the source stays the rule strategy unless the rules
// resolved nothing and the learned side carried the whole result.
func (mg *Merger) Merge(rule domain.ExtractionResult, learned domain.FieldMap) domain.ExtractionResult {
	if learned == nil || learned.ResolvedCount() == 0 {
		return rule
	}

	learnedScore := mg.scorer.Score(learned)
	if learnedScore < mg.minConfidence {
		log.Printf("ensemble.Merger: learned map below floor (%.2f < %.2f), keeping %s",
			learnedScore, mg.minConfidence, rule.Source)
		return rule
	}

	// Gap-filling is always allowed; replacing a resolved rule value
	// additionally requires the learned map to outscore the rule.
	allowOverride := !mg.preferRegex && learnedScore > rule.Confidence

	ruleResolved := rule.Fields.ResolvedCount()
	merged := rule.Fields.Clone()
	for _, f := range domain.Fields {
		if !learned.Resolved(f) {
			continue
		}
		if merged.Resolved(f) && !allowOverride {
			continue
		}
		merged.Set(f, learned[f])
	}

	source := rule.Source
	if ruleResolved == 0 {
		source = domain.StrategyNERFallback
	}

	return domain.ExtractionResult{
		Fields:     merged,
		Confidence: mg.scorer.Score(merged),
		Source:     source,
	}
}

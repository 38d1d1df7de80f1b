package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invext/internal/domain"
	"invext/internal/score"
)

func scorer() *score.Scorer {
	return score.New(score.DefaultWeights())
}

func ruleResult(pairs map[domain.Field]string, source domain.StrategyID) domain.ExtractionResult {
	m := domain.NewFieldMap()
	for f, v := range pairs {
		m.Set(f, v)
	}
	s := scorer()
	return domain.ExtractionResult{Fields: m, Confidence: s.Score(m), Source: source}
}

func TestMergeFillsGapsOnly(t *testing.T) {
	rule := ruleResult(map[domain.Field]string{
		domain.FieldSender: "Acme Consulting GmbH",
	}, domain.StrategyTwoColumn)

	learned := domain.NewFieldMap()
	learned.Set(domain.FieldSender, "Wrong Sender Name")
	learned.Set(domain.FieldRecipient, "Beta Handel AG")

	mg := New(scorer(), true, 0)
	out := mg.Merge(rule, learned)

	// prefer_regex keeps the resolved rule value, the gap is filled.
	assert.Equal(t, "Acme Consulting GmbH", out.Fields[domain.FieldSender])
	assert.Equal(t, "Beta Handel AG", out.Fields[domain.FieldRecipient])
	assert.Equal(t, domain.StrategyTwoColumn, out.Source)
	assert.Greater(t, out.Confidence, rule.Confidence)
}

func TestMergeLearnedOverridesWhenOutscoringRule(t *testing.T) {
	// Rule resolved only the sender (0.20); the learned map scores 0.40
	// and may therefore replace it.
	rule := ruleResult(map[domain.Field]string{
		domain.FieldSender: "Acme Consulting GmbH",
	}, domain.StrategyTwoColumn)

	learned := domain.NewFieldMap()
	learned.Set(domain.FieldSender, "Acme Consulting Group GmbH")
	learned.Set(domain.FieldRecipient, "Beta Handel AG")

	mg := New(scorer(), false, 0)
	out := mg.Merge(rule, learned)
	assert.Equal(t, "Acme Consulting Group GmbH", out.Fields[domain.FieldSender])
	assert.Equal(t, "Beta Handel AG", out.Fields[domain.FieldRecipient])
}

func TestMergeLowerScoringLearnedCannotOverride(t *testing.T) {
	// Rule scores 0.45, the learned map only 0.20: even without
	// prefer_regex the resolved sender must survive, while unresolved
	// fields may still be filled.
	rule := ruleResult(map[domain.Field]string{
		domain.FieldSender:    "Acme Consulting GmbH",
		domain.FieldRecipient: "Tech Solutions Ltd",
		domain.FieldCurrency:  "EUR",
	}, domain.StrategyTwoColumn)

	learned := domain.NewFieldMap()
	learned.Set(domain.FieldSender, "Totally Different Corp")

	mg := New(scorer(), false, 0)
	out := mg.Merge(rule, learned)
	assert.Equal(t, "Acme Consulting GmbH", out.Fields[domain.FieldSender])
	assert.Equal(t, "Tech Solutions Ltd", out.Fields[domain.FieldRecipient])
}

func TestMergeEqualScoresKeepRuleValue(t *testing.T) {
	rule := ruleResult(map[domain.Field]string{
		domain.FieldSender: "Acme Consulting GmbH",
	}, domain.StrategyTwoColumn)

	// Same single resolved field, same 0.20 score: a tie is not enough
	// to displace the rule value.
	learned := domain.NewFieldMap()
	learned.Set(domain.FieldSender, "Totally Different Corp")

	mg := New(scorer(), false, 0)
	out := mg.Merge(rule, learned)
	assert.Equal(t, "Acme Consulting GmbH", out.Fields[domain.FieldSender])
}

func TestMergeNeverDowngradesToUnresolved(t *testing.T) {
	rule := ruleResult(map[domain.Field]string{
		domain.FieldSender:   "Acme Consulting GmbH",
		domain.FieldCurrency: "EUR",
	}, domain.StrategyTwoColumn)

	// Learned map resolves something else but not the rule's fields.
	learned := domain.NewFieldMap()
	learned.Set(domain.FieldRecipient, "Beta Handel AG")

	mg := New(scorer(), false, 0)
	out := mg.Merge(rule, learned)

	assert.Equal(t, "Acme Consulting GmbH", out.Fields[domain.FieldSender])
	assert.Equal(t, "EUR", out.Fields[domain.FieldCurrency])
	assert.Equal(t, "Beta Handel AG", out.Fields[domain.FieldRecipient])
}

func TestMergeBelowFloorIsIgnored(t *testing.T) {
	rule := ruleResult(map[domain.Field]string{
		domain.FieldSender: "Acme Consulting GmbH",
	}, domain.StrategyTwoColumn)

	// Currency alone scores 0.05, below the 0.5 floor.
	learned := domain.NewFieldMap()
	learned.Set(domain.FieldCurrency, "EUR")

	mg := New(scorer(), true, 0.5)
	out := mg.Merge(rule, learned)
	assert.Equal(t, rule, out)
}

func TestMergeEmptyLearnedKeepsRule(t *testing.T) {
	rule := ruleResult(map[domain.Field]string{
		domain.FieldSender: "Acme Consulting GmbH",
	}, domain.StrategyTwoColumn)

	mg := New(scorer(), true, 0)
	assert.Equal(t, rule, mg.Merge(rule, domain.NewFieldMap()))
	assert.Equal(t, rule, mg.Merge(rule, nil))
}

func TestMergeSourceBecomesNERWhenRulesEmpty(t *testing.T) {
	rule := domain.ExtractionResult{
		Fields:     domain.NewFieldMap(),
		Confidence: 0,
		Source:     domain.StrategyUnresolved,
	}

	learned := domain.NewFieldMap()
	learned.Set(domain.FieldSender, "Acme Consulting GmbH")
	learned.Set(domain.FieldRecipient, "Beta Handel AG")

	mg := New(scorer(), true, 0)
	out := mg.Merge(rule, learned)

	assert.Equal(t, domain.StrategyNERFallback, out.Source)
	assert.Equal(t, "Acme Consulting GmbH", out.Fields[domain.FieldSender])
	assert.InDelta(t, 0.40, out.Confidence, 0.001)
}

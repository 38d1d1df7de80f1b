package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"invext/internal/domain"
	"invext/internal/patterns"
)

// featureNames is the fixed feature vector layout. Model weight vectors
// must be the same length; a mismatched model file is rejected at load
// time, never at classification time.
var featureNames = []string{
	"has_from_to",
	"has_party_label",
	"has_fingerprint",
	"line_count",
	"blank_ratio",
	"email_count",
	"label_density",
}

// Model is a linear multi-class scorer over hand-built text features,
// loaded from a JSON export of an offline training run. Classification
// is argmax of weights·features+bias per category.
type Model struct {
	classes []domain.LayoutCategory
	weights map[domain.LayoutCategory][]float64
	bias    map[domain.LayoutCategory]float64
}

type modelFile struct {
	Classes []string             `json:"classes"`
	Weights map[string][]float64 `json:"weights"`
	Bias    map[string]float64   `json:"bias"`
}

// LoadModel reads and validates a model file. Callers are expected to
// fall back to RuleBased on error rather than failing the parse.
func LoadModel(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout model: %w", err)
	}
	var f modelFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode layout model: %w", err)
	}
	if len(f.Classes) == 0 {
		return nil, fmt.Errorf("layout model: no classes")
	}

	m := &Model{
		weights: make(map[domain.LayoutCategory][]float64, len(f.Classes)),
		bias:    make(map[domain.LayoutCategory]float64, len(f.Classes)),
	}
	for _, c := range f.Classes {
		cat := domain.LayoutCategory(c)
		w, ok := f.Weights[c]
		if !ok || len(w) != len(featureNames) {
			return nil, fmt.Errorf("layout model: class %q needs %d weights", c, len(featureNames))
		}
		m.classes = append(m.classes, cat)
		m.weights[cat] = w
		m.bias[cat] = f.Bias[c]
	}
	return m, nil
}

func (m *Model) Classify(doc *domain.Document) domain.LayoutCategory {
	x := features(doc)

	best := m.classes[0]
	bestScore := 0.0
	for i, cat := range m.classes {
		s := m.bias[cat]
		for j, w := range m.weights[cat] {
			s += w * x[j]
		}
		if i == 0 || s > bestScore {
			best, bestScore = cat, s
		}
	}
	return best
}

func features(doc *domain.Document) []float64 {
	var fromTo, partyLabel, fingerprint float64
	if (RuleBased{}).Classify(doc) == domain.LayoutCompanySpecific {
		fingerprint = 1
	}

	labelLines := 0
	blank := 0
	for _, line := range doc.Lines {
		if line == "" {
			blank++
			continue
		}
		if patterns.MatchesAnyLabel(line, patterns.SenderLabels) ||
			patterns.MatchesAnyLabel(line, patterns.RecipientLabels) {
			labelLines++
			partyLabel = 1
		}
	}
	for _, tok := range []string{"From:", "To:", "Bill from:", "Bill to:"} {
		if strings.Contains(doc.Text, tok) {
			fromTo = 1
			break
		}
	}

	total := len(doc.Lines)
	if total == 0 {
		total = 1
	}
	return []float64{
		fromTo,
		partyLabel,
		fingerprint,
		float64(len(doc.Lines)),
		float64(blank) / float64(total),
		float64(len(patterns.ExtractEmails(doc.Text))),
		float64(labelLines) / float64(total),
	}
}

// Package ner adapts an external named-entity recognition service into
// a field extractor. The service is a sidecar speaking a small JSON
// protocol; its answers are schema-validated before any mapping runs,
// so a malformed sidecar response can never corrupt a field map.
package ner

import (
	"context"

	"invext/internal/domain"
)

// Entity is one recognized span. Labels follow the usual NER tag set:
// ORG, PERSON, MONEY, GPE.
type Entity struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Extractor produces a field map from entity recognition. A failed
// extraction returns an error; callers degrade to the rule-based result
// instead of propagating it.
type Extractor interface {
	Extract(ctx context.Context, doc *domain.Document) (domain.FieldMap, error)
}

// Null is the disabled extractor: every field stays unresolved. Used
// when the ML path is switched off so the wiring stays uniform.
type Null struct{}

func (Null) Extract(_ context.Context, _ *domain.Document) (domain.FieldMap, error) {
	return domain.NewFieldMap(), nil
}

// Package engine wires the extraction pipeline: layout classification,
// the strategy tournament, and the optional learned fallback. It is the
// only entry point callers need; everything below it is deterministic
// given the same document and configuration.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"invext/internal/config"
	"invext/internal/domain"
	"invext/internal/ensemble"
	"invext/internal/layout"
	"invext/internal/ner"
	"invext/internal/score"
	"invext/internal/selector"
	"invext/internal/strategy"
)

// Result is the outcome of one parse. NeedsReview is set when the
// confidence falls below the configured threshold; the result is still
// complete and usable, the flag only routes it to a human queue.
type Result struct {
	Fields      domain.FieldMap   `json:"fields"`
	Confidence  float64           `json:"confidence"`
	Source      domain.StrategyID `json:"source"`
	NeedsReview bool              `json:"needs_review"`
}

// Engine runs the full extraction pipeline for one document at a time.
// Safe for concurrent use: all state is read-only after construction.
type Engine struct {
	cfg        config.ExtractorConfig
	scorer     *score.Scorer
	classifier layout.Classifier
	extractor  ner.Extractor
	merger     *ensemble.Merger
}

// Option overrides a default collaborator, used by tests and by
// callers embedding a custom classifier or extractor.
type Option func(*Engine)

func WithClassifier(c layout.Classifier) Option {
	return func(e *Engine) { e.classifier = c }
}

func WithExtractor(x ner.Extractor) Option {
	return func(e *Engine) { e.extractor = x }
}

// New validates the configuration and assembles the pipeline. A layout
// model that fails to load is not fatal: the engine logs it and runs
// with the rule-based classifier instead.
func New(cfg config.ExtractorConfig, opts ...Option) (*Engine, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	scorer := score.New(score.DefaultWeights())
	e := &Engine{
		cfg:    cfg,
		scorer: scorer,
		merger: ensemble.New(scorer, cfg.PreferRegex, cfg.MLMinConfidence),
	}

	if cfg.LayoutEnabled {
		e.classifier = layout.RuleBased{}
		if cfg.LayoutModelPath != "" {
			model, err := layout.LoadModel(cfg.LayoutModelPath)
			if err != nil {
				log.Printf("engine.Engine: layout model unusable, using rules: %v", err)
			} else {
				e.classifier = model
			}
		}
	}

	if cfg.MLEnabled {
		e.extractor = ner.NewHTTPExtractor(cfg.NERURL, nerTimeout(cfg))
	} else {
		e.extractor = ner.Null{}
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Parse extracts fields from one document given as raw text lines.
// It never returns an error: the worst case is an all-unresolved
// result with zero confidence flagged for review.
func (e *Engine) Parse(ctx context.Context, lines []string) Result {
	doc := domain.NewDocument(lines)
	if strings.TrimSpace(doc.Text) == "" {
		return e.finish(domain.ExtractionResult{
			Fields:     domain.NewFieldMap(),
			Confidence: 0,
			Source:     domain.StrategyUnresolved,
		})
	}

	order := e.classify(doc)
	sel := selector.New(strategy.ByID(order), e.scorer)
	ruleResult := sel.Select(ctx, doc)

	if e.cfg.MLEnabled {
		ruleResult = e.mergeLearned(ctx, doc, ruleResult)
	}
	return e.finish(ruleResult)
}

// classify returns the strategy evaluation order. Any classifier
// failure degrades to the default order; classification is advisory
// and must never sink a parse.
func (e *Engine) classify(doc *domain.Document) (order []domain.StrategyID) {
	order = layout.StrategyOrder(domain.LayoutTwoColumn)
	if e.classifier == nil {
		return order
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine.Engine: layout classifier panicked: %v", r)
			order = layout.StrategyOrder(domain.LayoutTwoColumn)
		}
	}()
	return layout.StrategyOrder(e.classifier.Classify(doc))
}

// mergeLearned runs the entity extractor and folds its map into the
// rule result. Extractor errors and panics are contained here.
func (e *Engine) mergeLearned(ctx context.Context, doc *domain.Document, rule domain.ExtractionResult) (out domain.ExtractionResult) {
	out = rule
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine.Engine: entity extractor panicked: %v", r)
			out = rule
		}
	}()

	learned, err := e.extractor.Extract(ctx, doc)
	if err != nil {
		log.Printf("engine.Engine: entity extractor failed, keeping %s: %v", rule.Source, err)
		return rule
	}
	return e.merger.Merge(rule, learned)
}

func (e *Engine) finish(r domain.ExtractionResult) Result {
	return Result{
		Fields:      r.Fields,
		Confidence:  r.Confidence,
		Source:      r.Source,
		NeedsReview: r.Confidence < e.cfg.ConfidenceThreshold,
	}
}

func nerTimeout(cfg config.ExtractorConfig) time.Duration {
	if cfg.NERTimeoutSecs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(cfg.NERTimeoutSecs) * time.Second
}

func validate(cfg config.ExtractorConfig) error {
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: confidence_threshold %.2f outside [0,1]",
			domain.ErrInvalidConfig, cfg.ConfidenceThreshold)
	}
	if cfg.MLMinConfidence < 0 || cfg.MLMinConfidence > 1 {
		return fmt.Errorf("%w: ml_min_confidence %.2f outside [0,1]",
			domain.ErrInvalidConfig, cfg.MLMinConfidence)
	}
	if cfg.MLEnabled && cfg.NERURL == "" {
		return fmt.Errorf("%w: ml_enabled requires ner_url", domain.ErrInvalidConfig)
	}
	return nil
}

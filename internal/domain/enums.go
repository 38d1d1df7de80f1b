package domain

// StrategyID identifies which extractor produced a FieldMap.
type StrategyID string

const (
	StrategyTwoColumn       StrategyID = "two_column"
	StrategySingleColumn    StrategyID = "single_column_label"
	StrategyCompanySpecific StrategyID = "company_specific"
	StrategyPatternFallback StrategyID = "pattern_fallback"
	StrategyNERFallback     StrategyID = "ner_fallback"

	// StrategyUnresolved marks a parse where no strategy applied.
	// Not an error: the caller still receives a complete FieldMap.
	StrategyUnresolved StrategyID = "unresolved"
)

// LayoutCategory is advisory metadata used only to reorder strategy
// evaluation. It never appears in the final extraction output.
type LayoutCategory string

const (
	LayoutTwoColumn       LayoutCategory = "two_column"
	LayoutSingleColumn    LayoutCategory = "single_column"
	LayoutCompanySpecific LayoutCategory = "company_specific"
	LayoutUnstructured    LayoutCategory = "unstructured"
)

// Payment method values derived from which banking identifiers validated.
const (
	PaymentMethodSEPA              = "SEPA"
	PaymentMethodSEPAInternational = "SEPA_INTERNATIONAL"
	PaymentMethodACH               = "ACH"
	PaymentMethodBACS              = "BACS"
)

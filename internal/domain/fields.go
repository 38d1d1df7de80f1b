package domain

// Unresolved is the sentinel value for a field no strategy could extract.
// FieldMap values are never empty strings; a field is either a non-empty
// resolved value or exactly Unresolved.
const Unresolved = "UNRESOLVED"

// Field names the closed set of extractable invoice fields.
type Field string

const (
	FieldSender           Field = "sender"
	FieldRecipient        Field = "recipient"
	FieldAmount           Field = "amount"
	FieldCurrency         Field = "currency"
	FieldSenderAddress    Field = "sender_address"
	FieldRecipientAddress Field = "recipient_address"
	FieldSenderEmail      Field = "sender_email"
	FieldRecipientEmail   Field = "recipient_email"
	FieldIBAN             Field = "iban"
	FieldBIC              Field = "bic"
	FieldBankName         Field = "bank_name"
	FieldPaymentAddress   Field = "payment_address"
	FieldRoutingNumber    Field = "routing_number"
	FieldAccountNumber    Field = "account_number"
	FieldSortCode         Field = "sort_code"
	FieldPaymentMethod    Field = "payment_method"
)

// Fields is the canonical field order. Iteration over a FieldMap goes
// through this slice, never over map keys, so output order is stable.
var Fields = []Field{
	FieldSender,
	FieldRecipient,
	FieldAmount,
	FieldCurrency,
	FieldSenderAddress,
	FieldRecipientAddress,
	FieldSenderEmail,
	FieldRecipientEmail,
	FieldIBAN,
	FieldBIC,
	FieldBankName,
	FieldPaymentAddress,
	FieldRoutingNumber,
	FieldAccountNumber,
	FieldSortCode,
	FieldPaymentMethod,
}

// FieldMap maps every field in Fields to a resolved value or Unresolved.
// Use NewFieldMap so the closed-set invariant holds from the start.
type FieldMap map[Field]string

// NewFieldMap returns a FieldMap with every field set to Unresolved.
func NewFieldMap() FieldMap {
	m := make(FieldMap, len(Fields))
	for _, f := range Fields {
		m[f] = Unresolved
	}
	return m
}

// Resolved reports whether the field holds an extracted value.
func (m FieldMap) Resolved(f Field) bool {
	v, ok := m[f]
	return ok && v != Unresolved && v != ""
}

// Set assigns a value to a field, ignoring empty strings so the
// non-empty-or-Unresolved invariant is preserved.
func (m FieldMap) Set(f Field, v string) {
	if v == "" {
		return
	}
	m[f] = v
}

// Clone returns an independent copy of the map.
func (m FieldMap) Clone() FieldMap {
	out := make(FieldMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ResolvedCount returns how many fields hold extracted values.
func (m FieldMap) ResolvedCount() int {
	n := 0
	for _, f := range Fields {
		if m.Resolved(f) {
			n++
		}
	}
	return n
}

// ExtractionResult is the outcome of one document parse attempt.
// Immutable after creation.
type ExtractionResult struct {
	Fields     FieldMap   `json:"fields"`
	Confidence float64    `json:"confidence"`
	Source     StrategyID `json:"source"`
}

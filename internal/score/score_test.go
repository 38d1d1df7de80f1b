package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invext/internal/domain"
)

func TestScoreEmptyMap(t *testing.T) {
	s := New(DefaultWeights())
	assert.Zero(t, s.Score(domain.NewFieldMap()))
}

func TestScoreFullMap(t *testing.T) {
	m := domain.NewFieldMap()
	m.Set(domain.FieldSender, "Acme Consulting GmbH")
	m.Set(domain.FieldRecipient, "Tech Solutions Ltd")
	m.Set(domain.FieldAmount, "1250.00")
	m.Set(domain.FieldCurrency, "EUR")
	m.Set(domain.FieldIBAN, "DE89370400440532013000")
	m.Set(domain.FieldBIC, "DEUTDEFF")
	m.Set(domain.FieldSenderEmail, "billing@acme.de")
	m.Set(domain.FieldRecipientEmail, "jane@tech.com")
	m.Set(domain.FieldSenderAddress, "Hauptstraße 12, 10115 Berlin")

	s := New(DefaultWeights())
	assert.InDelta(t, 1.0, s.Score(m), 0.001)
}

func TestScorePartialCreditForInvalidIBAN(t *testing.T) {
	s := New(DefaultWeights())

	valid := domain.NewFieldMap()
	valid.Set(domain.FieldIBAN, "DE89370400440532013000")
	assert.InDelta(t, 0.15, s.Score(valid), 0.001)

	invalid := domain.NewFieldMap()
	invalid.Set(domain.FieldIBAN, "DE89370400440532013001")
	assert.InDelta(t, 0.05, s.Score(invalid), 0.001)
}

func TestScorePartialCreditForInvalidBIC(t *testing.T) {
	s := New(DefaultWeights())

	m := domain.NewFieldMap()
	m.Set(domain.FieldBIC, "NOTABIC")
	assert.InDelta(t, 0.05, s.Score(m), 0.001)
}

func TestScoreShortNamesEarnHalf(t *testing.T) {
	s := New(DefaultWeights())

	// Names of three characters or fewer are suspect but still resolved,
	// so each earns half its weight.
	m := domain.NewFieldMap()
	m.Set(domain.FieldSender, "AG")
	m.Set(domain.FieldRecipient, "Ok")
	assert.InDelta(t, 0.20, s.Score(m), 0.001)
}

func TestScoreUnparsableAmountEarnsHalf(t *testing.T) {
	s := New(DefaultWeights())

	valid := domain.NewFieldMap()
	valid.Set(domain.FieldAmount, "1250.00")
	assert.InDelta(t, 0.10, s.Score(valid), 0.001)

	garbage := domain.NewFieldMap()
	garbage.Set(domain.FieldAmount, "twelve euros")
	assert.InDelta(t, 0.05, s.Score(garbage), 0.001)
}

func TestScoreInvalidEmailEarnsNothing(t *testing.T) {
	s := New(DefaultWeights())

	m := domain.NewFieldMap()
	m.Set(domain.FieldSenderEmail, "not-an-address")
	m.Set(domain.FieldRecipientEmail, "jane@@tech.com")
	assert.Zero(t, s.Score(m))
}

func TestScoreAddressCountsOnce(t *testing.T) {
	s := New(DefaultWeights())

	one := domain.NewFieldMap()
	one.Set(domain.FieldSenderAddress, "Hauptstraße 12")

	all := one.Clone()
	all.Set(domain.FieldRecipientAddress, "Marktplatz 3")
	all.Set(domain.FieldPaymentAddress, "1 Fleet Street")

	assert.Equal(t, s.Score(one), s.Score(all))
}

func TestScoreClampsToOne(t *testing.T) {
	w := DefaultWeights()
	w.Sender = 0.9
	w.Recipient = 0.9
	s := New(w)

	m := domain.NewFieldMap()
	m.Set(domain.FieldSender, "Acme Consulting")
	m.Set(domain.FieldRecipient, "Beta Holdings")
	assert.Equal(t, 1.0, s.Score(m))
}

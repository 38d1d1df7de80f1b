package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invext/internal/domain"
)

func doc(lines ...string) *domain.Document {
	return domain.NewDocument(lines)
}

func TestDefaultOrder(t *testing.T) {
	ids := []domain.StrategyID{}
	for _, s := range Default() {
		ids = append(ids, s.ID())
	}
	assert.Equal(t, []domain.StrategyID{
		domain.StrategyTwoColumn,
		domain.StrategySingleColumn,
		domain.StrategyCompanySpecific,
		domain.StrategyPatternFallback,
	}, ids)
}

func TestByIDPermutation(t *testing.T) {
	out := ByID([]domain.StrategyID{domain.StrategyPatternFallback, domain.StrategyTwoColumn})
	require.Len(t, out, 4)
	assert.Equal(t, domain.StrategyPatternFallback, out[0].ID())
	assert.Equal(t, domain.StrategyTwoColumn, out[1].ID())
	// Missing strategies are appended in default order.
	assert.Equal(t, domain.StrategySingleColumn, out[2].ID())
	assert.Equal(t, domain.StrategyCompanySpecific, out[3].ID())
}

func TestTwoColumnParse(t *testing.T) {
	d := doc(
		"From: Acme Consulting GmbH",
		"To: Tech Solutions Ltd",
		"Amount: 1,250.00",
		"Currency: EUR",
	)

	s := &TwoColumn{}
	require.True(t, s.CanHandle(d))

	m := s.Parse(d)
	assert.Equal(t, "Acme Consulting GmbH", m[domain.FieldSender])
	assert.Equal(t, "Tech Solutions Ltd", m[domain.FieldRecipient])
	assert.Equal(t, "1250.00", m[domain.FieldAmount])
	assert.Equal(t, "EUR", m[domain.FieldCurrency])
	assert.Equal(t, domain.Unresolved, m[domain.FieldIBAN])
}

func TestTwoColumnMergedLabelRow(t *testing.T) {
	d := doc(
		"Acme GmbH   Bill to:",
		"Beta Corp",
		"",
		"Total Amount: $99.50",
	)

	s := &TwoColumn{}
	require.True(t, s.CanHandle(d))

	m := s.Parse(d)
	assert.Equal(t, "Acme GmbH", m[domain.FieldSender])
	assert.Equal(t, "Beta Corp", m[domain.FieldRecipient])
	assert.Equal(t, "99.50", m[domain.FieldAmount])
	assert.Equal(t, "USD", m[domain.FieldCurrency])
}

func TestTwoColumnDualEmailRow(t *testing.T) {
	d := doc(
		"From: Acme GmbH",
		"To: Beta Corp",
		"billing@acme.de   contact@beta.com",
	)

	m := (&TwoColumn{}).Parse(d)
	assert.Equal(t, "billing@acme.de", m[domain.FieldSenderEmail])
	assert.Equal(t, "contact@beta.com", m[domain.FieldRecipientEmail])
}

func TestSingleColumnParse(t *testing.T) {
	d := doc(
		"Rechnung Nr. 2024-117",
		"",
		"Absender:",
		"Muster Dienstleistungen GmbH",
		"Hauptstraße 12",
		"10115 Berlin",
		"",
		"Empfänger:",
		"Beispiel Handel AG",
		"Marktplatz 3",
		"80331 München",
		"",
		"Gesamtbetrag: 1.250,00 €",
	)

	s := &SingleColumnLabel{}
	require.True(t, s.CanHandle(d))

	m := s.Parse(d)
	assert.Equal(t, "Muster Dienstleistungen GmbH", m[domain.FieldSender])
	assert.Equal(t, "Beispiel Handel AG", m[domain.FieldRecipient])
	assert.Contains(t, m[domain.FieldSenderAddress], "Hauptstraße 12")
	assert.Contains(t, m[domain.FieldRecipientAddress], "München")
	assert.Equal(t, "1250.00", m[domain.FieldAmount])
	assert.Equal(t, "EUR", m[domain.FieldCurrency])
}

func TestSingleColumnRejectsUnlabeled(t *testing.T) {
	s := &SingleColumnLabel{}
	assert.False(t, s.CanHandle(doc("just some text", "no labels at all")))
}

func TestCompanySpecificFingerprint(t *testing.T) {
	d := doc(
		"DB Vertrieb GmbH · Stephensonstraße 1 · 60326 Frankfurt",
		"",
		"Herrn Max Mustermann",
		"Beispielweg 5",
		"12345 Musterstadt",
		"",
		"Gesamtbetrag: 49,90 €",
	)

	s := &CompanySpecific{}
	require.True(t, s.CanHandle(d))

	m := s.Parse(d)
	assert.Contains(t, m[domain.FieldSender], "DB Vertrieb")
	assert.Equal(t, "Herrn Max Mustermann", m[domain.FieldRecipient])
	assert.Equal(t, "49.90", m[domain.FieldAmount])
}

func TestCompanySpecificNeedsTwoMarkers(t *testing.T) {
	s := &CompanySpecific{}
	assert.False(t, s.CanHandle(doc("Acme Consulting GmbH", "plain invoice text")))
	assert.True(t, s.CanHandle(doc("Muster GmbH", "Hauptstraße 1")))
}

func TestPatternFallbackYieldsToStructured(t *testing.T) {
	s := &PatternFallback{}
	assert.False(t, s.CanHandle(doc("From: Acme", "To: Beta")))
	assert.False(t, s.CanHandle(doc("Absender:", "Muster GmbH")))
	assert.False(t, s.CanHandle(doc("Deutsche Bahn invoice")))
	assert.True(t, s.CanHandle(doc("unstructured invoice text")))
}

func TestPatternFallbackParse(t *testing.T) {
	d := doc(
		"Invoice 4711",
		"Acme Widgets Inc",
		"billing@acme-widgets.com",
		"jane.doe@customer.org",
		"Total Amount: $2,000.00",
	)

	s := &PatternFallback{}
	m := s.Parse(d)
	assert.Equal(t, "Acme Widgets Inc", m[domain.FieldSender])
	assert.Equal(t, "billing@acme-widgets.com", m[domain.FieldSenderEmail])
	assert.Equal(t, "jane.doe@customer.org", m[domain.FieldRecipientEmail])
	assert.Equal(t, "2000.00", m[domain.FieldAmount])
	assert.Equal(t, "USD", m[domain.FieldCurrency])
}

func TestPaymentMethodSEPA(t *testing.T) {
	d := doc(
		"Payment details",
		"IBAN: DE89 3704 0044 0532 0130 00",
		"BIC: DEUTDEFF",
	)
	m := domain.NewFieldMap()
	extractBanking(d, m)

	assert.Equal(t, "DE89370400440532013000", m[domain.FieldIBAN])
	assert.Equal(t, "DEUTDEFF", m[domain.FieldBIC])
	assert.Equal(t, domain.PaymentMethodSEPA, m[domain.FieldPaymentMethod])
}

func TestPaymentMethodACH(t *testing.T) {
	d := doc(
		"Routing Number: 121000248",
		"Account Number: 123456789",
	)
	m := domain.NewFieldMap()
	extractBanking(d, m)

	assert.Equal(t, "121000248", m[domain.FieldRoutingNumber])
	assert.Equal(t, "123456789", m[domain.FieldAccountNumber])
	assert.Equal(t, domain.PaymentMethodACH, m[domain.FieldPaymentMethod])
}

func TestPaymentMethodBACS(t *testing.T) {
	d := doc(
		"Sort Code: 200000",
		"Account Number: 12345678",
	)
	m := domain.NewFieldMap()
	extractBanking(d, m)

	assert.Equal(t, "20-00-00", m[domain.FieldSortCode])
	assert.Equal(t, domain.PaymentMethodBACS, m[domain.FieldPaymentMethod])
}

func TestPaymentMethodACHFromRoutingAlone(t *testing.T) {
	// A routing number identifies the rail by itself; the account
	// number is not required.
	d := doc("Routing Number: 121000248")
	m := domain.NewFieldMap()
	extractBanking(d, m)

	assert.Equal(t, "121000248", m[domain.FieldRoutingNumber])
	assert.Equal(t, domain.PaymentMethodACH, m[domain.FieldPaymentMethod])
}

func TestPaymentMethodBACSFromSortCodeAlone(t *testing.T) {
	d := doc("Sort Code: 20-00-00")
	m := domain.NewFieldMap()
	extractBanking(d, m)

	assert.Equal(t, "20-00-00", m[domain.FieldSortCode])
	assert.Equal(t, domain.PaymentMethodBACS, m[domain.FieldPaymentMethod])
}

func TestPaymentMethodIBANOutranksACH(t *testing.T) {
	d := doc(
		"IBAN: DE89370400440532013000",
		"Routing Number: 121000248",
		"Account Number: 123456789",
	)
	m := domain.NewFieldMap()
	extractBanking(d, m)
	assert.Equal(t, domain.PaymentMethodSEPA, m[domain.FieldPaymentMethod])
}

func TestInvalidIBANDropped(t *testing.T) {
	d := doc("IBAN: DE89370400440532013001")
	m := domain.NewFieldMap()
	extractBanking(d, m)
	assert.Equal(t, domain.Unresolved, m[domain.FieldIBAN])
	assert.Equal(t, domain.Unresolved, m[domain.FieldPaymentMethod])
}

func TestPaymentAddressBlock(t *testing.T) {
	d := doc(
		"PAYMENT ADDRESS",
		"Acme Payments Ltd",
		"1 Fleet Street",
		"EC4Y 1AA London",
		"",
		"other text",
	)
	m := domain.NewFieldMap()
	extractBanking(d, m)
	assert.Contains(t, m[domain.FieldPaymentAddress], "Fleet Street")
}

package ner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invext/internal/domain"
)

func TestMapEntities(t *testing.T) {
	d := domain.NewDocumentFromText("Rechnung\nAcme GmbH\nBetrag: 1.250,00 €")
	entities := []Entity{
		{Label: "PERSON", Text: "Max Mustermann"},
		{Label: "ORG", Text: "Acme GmbH"},
		{Label: "ORG", Text: "Beta Handel AG"},
		{Label: "MONEY", Text: "€ 1.250,00"},
		{Label: "GPE", Text: "Berlin"},
	}

	m := MapEntities(entities, d)
	assert.Equal(t, "Acme GmbH", m[domain.FieldSender])
	// A second organization outranks the person entity.
	assert.Equal(t, "Beta Handel AG", m[domain.FieldRecipient])
	assert.Equal(t, "1250.00", m[domain.FieldAmount])
	assert.Equal(t, "EUR", m[domain.FieldCurrency])
	assert.Equal(t, "Berlin", m[domain.FieldRecipientAddress])
}

func TestMapEntitiesPersonFallback(t *testing.T) {
	d := domain.NewDocumentFromText("invoice text")
	m := MapEntities([]Entity{
		{Label: "ORG", Text: "Acme Inc"},
		{Label: "PERSON", Text: "Jane Doe"},
	}, d)

	assert.Equal(t, "Acme Inc", m[domain.FieldSender])
	assert.Equal(t, "Jane Doe", m[domain.FieldRecipient])
}

func TestMapEntitiesDeduplicatesOrgs(t *testing.T) {
	d := domain.NewDocumentFromText("invoice text")
	m := MapEntities([]Entity{
		{Label: "ORG", Text: "Acme Inc"},
		{Label: "ORG", Text: "ACME INC"},
	}, d)

	assert.Equal(t, "Acme Inc", m[domain.FieldSender])
	assert.Equal(t, domain.Unresolved, m[domain.FieldRecipient])
}

func TestMapEntitiesIgnoresUnknownLabels(t *testing.T) {
	d := domain.NewDocumentFromText("invoice text")
	m := MapEntities([]Entity{{Label: "DATE", Text: "2026-01-01"}}, d)
	assert.Zero(t, m.ResolvedCount())
}

func TestNullExtractor(t *testing.T) {
	m, err := Null{}.Extract(context.Background(), domain.NewDocumentFromText("anything"))
	require.NoError(t, err)
	assert.Zero(t, m.ResolvedCount())
}

func TestHTTPExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entities": [
			{"label": "ORG", "text": "Acme Corporation", "start": 0, "end": 16},
			{"label": "MONEY", "text": "$250.00"}
		]}`))
	}))
	defer srv.Close()

	x := NewHTTPExtractor(srv.URL, 5*time.Second)
	m, err := x.Extract(context.Background(), domain.NewDocumentFromText("Acme Corporation owes $250.00"))
	require.NoError(t, err)

	assert.Equal(t, "Acme Corporation", m[domain.FieldSender])
	assert.Equal(t, "250.00", m[domain.FieldAmount])
	assert.Equal(t, "USD", m[domain.FieldCurrency])
}

func TestHTTPExtractorRejectsInvalidSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"entities": "not an array"}`))
	}))
	defer srv.Close()

	x := NewHTTPExtractor(srv.URL, 5*time.Second)
	_, err := x.Extract(context.Background(), domain.NewDocumentFromText("text"))
	assert.Error(t, err)
}

func TestHTTPExtractorServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	x := NewHTTPExtractor(srv.URL, 5*time.Second)
	_, err := x.Extract(context.Background(), domain.NewDocumentFromText("text"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractorUnavailable)
}

func TestHTTPExtractorUnreachable(t *testing.T) {
	x := NewHTTPExtractor("http://127.0.0.1:1/entities", 500*time.Millisecond)
	_, err := x.Extract(context.Background(), domain.NewDocumentFromText("text"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractorUnavailable)
}

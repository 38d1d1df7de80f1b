package banking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateABARouting(t *testing.T) {
	tests := []struct {
		name    string
		routing string
		want    bool
	}{
		{"valid Wells Fargo", "121000248", true},
		{"valid Chase", "021000021", true},
		{"checksum broken by one digit", "121000247", false},
		{"repeated digits pass checksum but rejected", "111111111", false},
		{"all zeros rejected", "000000000", false},
		{"invalid prefix 99", "991000248", false},
		{"invalid prefix 13", "131000249", false},
		{"too short", "12100024", false},
		{"too long", "1210002480", false},
		{"non-numeric", "12100024X", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateABARouting(tt.routing))
		})
	}
}

func TestNormalizeSortCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare digits", "200000", "20-00-00", true},
		{"already hyphenated", "20-00-00", "20-00-00", true},
		{"space separated", "20 00 00", "20-00-00", true},
		{"five digits", "12345", "", false},
		{"seven digits", "1234567", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeSortCode(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Normalizing an already-normalized sort code must not change it.
func TestNormalizeSortCodeIdempotent(t *testing.T) {
	first, ok := NormalizeSortCode("609242")
	assert.True(t, ok)
	second, ok := NormalizeSortCode(first)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}

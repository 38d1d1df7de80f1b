// Package banking validates and normalizes banking and numeric tokens.
// All functions are pure; invalid input yields a false/invalid result,
// never an error or panic.
package banking

import (
	"math/big"
	"regexp"
	"strings"
)

var (
	ibanShape = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`)
	bicShape  = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

	big97 = big.NewInt(97)
)

// sepaCountries are the ISO country codes inside the Single Euro
// Payments Area. An IBAN outside this set is still structurally valid
// but settles as an international transfer.
var sepaCountries = map[string]bool{
	"AD": true, "AT": true, "BE": true, "BG": true, "CH": true,
	"CY": true, "CZ": true, "DE": true, "DK": true, "EE": true,
	"ES": true, "FI": true, "FR": true, "GB": true, "GI": true,
	"GR": true, "HR": true, "HU": true, "IE": true, "IS": true,
	"IT": true, "LI": true, "LT": true, "LU": true, "LV": true,
	"MC": true, "MT": true, "NL": true, "NO": true, "PL": true,
	"PT": true, "RO": true, "SE": true, "SI": true, "SK": true,
	"SM": true, "VA": true,
}

// NormalizeIBAN strips spaces and uppercases an IBAN candidate.
func NormalizeIBAN(token string) string {
	return strings.ToUpper(strings.Join(strings.Fields(token), ""))
}

// ValidateIBAN checks an IBAN candidate: length 15-34, two letters plus
// two check digits plus alphanumerics, and the ISO 7064 mod-97 checksum.
// The rearranged digit string exceeds native integer width for long
// IBANs, so the modulo runs on a big.Int.
func ValidateIBAN(token string) bool {
	s := NormalizeIBAN(token)
	if len(s) < 15 || len(s) > 34 {
		return false
	}
	if !ibanShape.MatchString(s) {
		return false
	}

	// Move the country code and check digits to the end, then map
	// letters A-Z to 10-35.
	rearranged := s[4:] + s[:4]
	var digits strings.Builder
	digits.Grow(len(rearranged) * 2)
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			digits.WriteString(big.NewInt(int64(r-'A') + 10).String())
		default:
			return false
		}
	}

	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, big97).Int64() == 1
}

// IsSEPACountry reports whether the IBAN's country code belongs to the
// SEPA zone. The IBAN is assumed already normalized/validated.
func IsSEPACountry(iban string) bool {
	if len(iban) < 2 {
		return false
	}
	return sepaCountries[iban[:2]]
}

// ValidateBIC checks a BIC/SWIFT code: exactly 8 or 11 characters,
// 4-letter bank code, 2-letter country code, 2 alphanumeric location
// characters and an optional 3 alphanumeric branch suffix.
func ValidateBIC(token string) bool {
	s := strings.ToUpper(strings.TrimSpace(token))
	if len(s) != 8 && len(s) != 11 {
		return false
	}
	return bicShape.MatchString(s)
}

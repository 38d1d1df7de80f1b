package banking

import (
	"strconv"
	"strings"
)

// Locale names the separator convention used to read an amount token.
type Locale string

const (
	// LocaleUS reads "." as the decimal separator and "," as thousands.
	LocaleUS Locale = "us"
	// LocaleEU reads "," as the decimal separator and "." as thousands.
	LocaleEU Locale = "eu"
)

// Amount is the result of locale-aware amount parsing. Valid is false
// for unparsable or non-positive tokens; parsing never errors.
type Amount struct {
	Value  float64
	Locale Locale
	Valid  bool
}

// NormalizeAmount parses a monetary token whose thousands/decimal
// separators are ambiguous. When both "." and "," appear, the one
// appearing last is the decimal separator. With a single separator
// type the hints decide: language beats currency, "de" or EUR selects
// the EU convention, anything else (or no hints) the US convention.
func NormalizeAmount(token, currencyHint, languageHint string) Amount {
	s := strings.TrimSpace(token)
	for _, sym := range []string{"€", "$", "£"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return Amount{}
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	var locale Locale
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			locale = LocaleEU
		} else {
			locale = LocaleUS
		}
	default:
		locale = hintedLocale(currencyHint, languageHint)
	}

	var normalized string
	if locale == LocaleEU {
		normalized = strings.ReplaceAll(s, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
	} else {
		normalized = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || v <= 0 {
		return Amount{Locale: locale}
	}
	return Amount{Value: v, Locale: locale, Valid: true}
}

func hintedLocale(currencyHint, languageHint string) Locale {
	switch strings.ToLower(strings.TrimSpace(languageHint)) {
	case "de":
		return LocaleEU
	case "en":
		return LocaleUS
	}
	if strings.EqualFold(strings.TrimSpace(currencyHint), "EUR") {
		return LocaleEU
	}
	return LocaleUS
}

package banking

import (
	"fmt"
	"regexp"
	"strings"
)

var nineDigits = regexp.MustCompile(`^\d{9}$`)

// validABAPrefix reports whether the first two digits of a routing
// number fall in a Federal Reserve district range: 01-12 (banks),
// 21-32 (thrifts), 61-72 (electronic), or 80 (traveler's checks).
func validABAPrefix(prefix int) bool {
	switch {
	case prefix >= 1 && prefix <= 12:
		return true
	case prefix >= 21 && prefix <= 32:
		return true
	case prefix >= 61 && prefix <= 72:
		return true
	case prefix == 80:
		return true
	}
	return false
}

// ValidateABARouting checks a 9-digit US bank routing number: prefix
// range, the 3-7-1 weighted checksum, and rejection of degenerate
// repeated-digit strings that satisfy the checksum trivially.
func ValidateABARouting(token string) bool {
	s := strings.TrimSpace(token)
	if !nineDigits.MatchString(s) {
		return false
	}

	// All-same-digit strings (000000000, 111111111, ...) pass the
	// weighted sum but are not assignable routing numbers.
	same := true
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			same = false
			break
		}
	}
	if same {
		return false
	}

	prefix := int(s[0]-'0')*10 + int(s[1]-'0')
	if !validABAPrefix(prefix) {
		return false
	}

	d := func(i int) int { return int(s[i] - '0') }
	sum := 3*(d(0)+d(3)+d(6)) + 7*(d(1)+d(4)+d(7)) + (d(2) + d(5) + d(8))
	return sum%10 == 0
}

// NormalizeSortCode strips everything but digits from a UK sort code
// and formats it DD-DD-DD. There is no checksum for sort codes; six
// digits is the only validity condition. Idempotent.
func NormalizeSortCode(token string) (string, bool) {
	var digits strings.Builder
	for _, r := range token {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) != 6 {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", s[0:2], s[2:4], s[4:6]), true
}

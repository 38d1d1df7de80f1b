package banking

import "strings"

// IsValidEmail checks the minimal shape of an email address: exactly
// one "@", a non-empty local part, and a domain with at least one dot
// and no empty dot-segments. Deliverability is out of scope.
func IsValidEmail(token string) bool {
	s := strings.TrimSpace(token)
	at := strings.Count(s, "@")
	if at != 1 {
		return false
	}
	parts := strings.SplitN(s, "@", 2)
	local, domain := parts[0], parts[1]
	if local == "" || domain == "" {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, seg := range strings.Split(domain, ".") {
		if seg == "" {
			return false
		}
	}
	return true
}

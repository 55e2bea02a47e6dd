package fraud

import (
	"strings"
	"unicode"
)

// Domains that never count as a shared company affiliation.
var publicEmailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"live.com":       true,
	"aol.com":        true,
	"icloud.com":     true,
	"me.com":         true,
	"proton.me":      true,
	"protonmail.com": true,
	"mail.com":       true,
	"gmx.com":        true,
	"zoho.com":       true,
	"yandex.com":     true,
}

func localPart(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return strings.ToLower(email)
	}
	return strings.ToLower(email[:at])
}

func emailDomain(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

func sameCompanyDomain(brokerEmail, customerEmail string) bool {
	d1, d2 := emailDomain(brokerEmail), emailDomain(customerEmail)
	if d1 == "" || d1 != d2 {
		return false
	}
	return !publicEmailDomains[d1]
}

// similarity is a normalized edit-distance ratio in [0, 1]: 1 means
// identical, 0 means nothing in common.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// sequentialLocalParts reports whether the two local parts share a prefix and
// differ only by an adjacent integer suffix, e.g. jane3 / jane4 or acme /
// acme1. A missing suffix counts as zero.
func sequentialLocalParts(a, b string) bool {
	if a == b {
		return false
	}
	prefixA, numA, okA := splitNumericSuffix(a)
	prefixB, numB, okB := splitNumericSuffix(b)
	if !okA && !okB {
		return false
	}
	if prefixA != prefixB || prefixA == "" {
		return false
	}
	diff := numA - numB
	return diff == 1 || diff == -1
}

func splitNumericSuffix(s string) (prefix string, num int, hasSuffix bool) {
	i := len(s)
	for i > 0 && unicode.IsDigit(rune(s[i-1])) {
		i--
	}
	prefix = s[:i]
	if i == len(s) {
		return prefix, 0, false
	}
	// suffixes long enough to overflow are not sequential counters
	digits := s[i:]
	if len(digits) > 9 {
		return prefix, 0, false
	}
	for _, d := range digits {
		num = num*10 + int(d-'0')
	}
	return prefix, num, true
}

package lib

import (
	"strings"

	"github.com/dlclark/regexp2"
)

const (
	jlcDomain  = "jlcpcb.com"
	lcscDomain = "lcsc.com"
)

var (
	// https://jlcpcb.com/partdetail/.../C11702
	jlcURLMatcher = regexp2.MustCompile(`/(C[0-9]+)$`, regexp2.RE2)

	// https://www.lcsc.com/product-detail/..._C11702.html
	lcscURLMatcher = regexp2.MustCompile(`_(C[0-9]+)[^/]*\.html$`, regexp2.RE2)

	partCodeMatcher = regexp2.MustCompile(`^C[0-9]+$`, regexp2.RE2)
)

/*
	Return the LCSC part code contained in a search term. The term may be a
	bare code, a JLCPCB part URL or an LCSC product URL.

	Only a string that is exactly "C" followed by digits is ever returned, so
	the result can go into a query string without escaping.
*/
func ExtractPartCode(term string) (string, bool) {
	term = strings.TrimSpace(term)

	candidate := ""
	if strings.Contains(term, "http") {
		if strings.Contains(term, jlcDomain) {
			candidate = firstGroup(jlcURLMatcher, term)
		} else if strings.Contains(term, lcscDomain) {
			candidate = firstGroup(lcscURLMatcher, term)
		}
	} else if strings.HasPrefix(term, "C") {
		candidate = term
	}

	if ok, _ := partCodeMatcher.MatchString(candidate); !ok {
		return "", false
	}

	return candidate, true
}

// IsPartCode reports whether code is already a canonical part code.
func IsPartCode(code string) bool {
	ok, _ := partCodeMatcher.MatchString(code)
	return ok
}

func firstGroup(re *regexp2.Regexp, s string) string {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return ""
	}

	group := m.GroupByNumber(1)
	if group == nil {
		return ""
	}

	return group.String()
}

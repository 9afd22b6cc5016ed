package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// propertyKey reduces a property name to its merge key: lowercased with all
// non-alphanumeric characters stripped, so "Certified Values" and
// "certified-values" collapse into one group.
func propertyKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fragmentHeaders is the vocabulary of row/table names that mark a result as
// a continuation fragment of the preceding table rather than a table of its
// own. A genuine table whose header literally is "%" would be misclassified;
// that ambiguity is inherited from the source material and accepted.
var fragmentHeaders = map[string]struct{}{
	"in mg/kg": {},
	"in %":     {},
	"mg/kg":    {},
	"%":        {},
	"":         {},
}

// isFragmentHeader reports whether a result name is only a unit header.
func isFragmentHeader(name string) bool {
	_, ok := fragmentHeaders[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// footnotePattern matches footnote-style text: a digit run followed by a
// closing parenthesis, or a leading asterisk.
var footnotePattern = regexp.MustCompile(`^\s*(?:[0-9]+\)|\*)`)

// isFootnote reports whether a description is a relocated table footnote.
func isFootnote(description string) bool {
	return footnotePattern.MatchString(description)
}

// LocalityRule forces a country code when a producer city contains a known
// locality substring. The match is case-insensitive.
type LocalityRule struct {
	Substring string
	Country   string
}

// defaultLocalityRules covers producer sites whose extractions routinely
// arrive without a country.
var defaultLocalityRules = []LocalityRule{
	{Substring: "braunschweig", Country: "DE"},
	{Substring: "berlin", Country: "DE"},
}

// countryForCity applies the locality rules to a city name.
func countryForCity(rules []LocalityRule, city string) (string, bool) {
	folded := strings.ToLower(city)
	for _, rule := range rules {
		if rule.Substring != "" && strings.Contains(folded, rule.Substring) {
			return rule.Country, true
		}
	}
	return "", false
}

// carryMonths normalizes a year/month duration so months stays within 0–11
// while the total month count is preserved.
func carryMonths(years, months int) (int, int) {
	if years < 0 {
		years = 0
	}
	if months < 0 {
		months = 0
	}
	total := years*12 + months
	return total / 12, total % 12
}

var monthYearPattern = regexp.MustCompile(`^\s*([0-9]{1,2})\s*/\s*([0-9]{4})\s*$`)

// monthEndDate rewrites an "MM/YYYY" token to the ISO date of the last
// calendar day of that month, using day zero of the following month so leap
// years fall out of the calendar arithmetic.
func monthEndDate(token string) (string, bool) {
	match := monthYearPattern.FindStringSubmatch(token)
	if match == nil {
		return "", false
	}
	month, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 {
		return "", false
	}
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return last.Format("2006-01-02"), true
}

// sanitizePostCode deletes every non-digit character.
func sanitizePostCode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// defaultResultName substitutes "Values" for absent or single-character
// table names.
func defaultResultName(name string) string {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) <= 1 {
		return "Values"
	}
	return trimmed
}

// isComparison reports whether a string is a comparison expression such as
// "< 0.05". Comparison expressions found in the uncertainty column are
// values, not uncertainties.
func isComparison(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "<") || strings.HasPrefix(trimmed, ">")
}

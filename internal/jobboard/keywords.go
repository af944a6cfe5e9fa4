package jobboard

import "strings"

var targetRoles = []string{
	"Product Analyst",
	"Product Manager",
	"Product Owner",
	"Customer Success Manager",
	"Data Analyst",
	"Technical Product Manager",
	"Business Analyst",
	"Customer Experience Manager",
	"Technical Support Manager",
}

var industries = []string{
	"SaaS",
	"Fintech",
	"IT",
	"Consulting",
	"Enterprise",
}

var defaultKeywords = buildKeywords(targetRoles, industries)

func buildKeywords(roles, inds []string) string {
	quoted := make([]string, len(roles))
	for i, r := range roles {
		quoted[i] = `"` + r + `"`
	}
	return strings.Join(quoted, " OR ") + " (" + strings.Join(inds, " OR ") + ") English"
}

// keywords returns the query sent upstream: the caller's text, or the
// target-role expression when it is blank.
func keywords(query string) string {
	if q := strings.TrimSpace(query); q != "" {
		return q
	}
	return defaultKeywords
}

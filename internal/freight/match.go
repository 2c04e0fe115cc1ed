package freight

import "strings"

// containsFold reports whether field contains term, ignoring case. An empty
// field or term never matches.
func containsFold(field, term string) bool {
	field = strings.TrimSpace(field)
	term = strings.TrimSpace(term)
	if field == "" || term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(term))
}

func containsAnyFold(field string, terms []string) bool {
	for _, t := range terms {
		if containsFold(field, t) {
			return true
		}
	}
	return false
}

func postalPrefix(postalCode string) (string, bool) {
	pc := strings.TrimSpace(postalCode)
	if len(pc) < 3 {
		return "", false
	}
	return pc[:3], true
}

package menu

import "strings"

type Filter struct {
	Category string
	Search   string
}

func (f Filter) matches(it Item) bool {
	if f.Category != "" && f.Category != CategoryAll && it.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.Name), q) ||
		strings.Contains(strings.ToLower(it.Description), q)
}

// Apply returns the items matching f, keeping catalog order.
func Apply(items []Item, f Filter) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.matches(it) {
			out = append(out, it)
		}
	}
	return out
}

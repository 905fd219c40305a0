package knowledge

import (
	"math/rand/v2"
	"strings"

	"support-assistant-be/pkg/assistant/conversation"
)

// Selector picks one of n candidate responses, returning an index in [0, n)
type Selector interface {
	Pick(n int) int
}

// RandomSelector picks uniformly at random. The top-level math/rand/v2
// functions are safe for concurrent use.
type RandomSelector struct{}

func (RandomSelector) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return rand.IntN(n)
}

// Match is a response chosen from one of the tables
type Match struct {
	Table    TableName
	Response string
}

// Matcher answers messages from the keyword tables
type Matcher struct {
	base     *Base
	selector Selector
}

func NewMatcher(base *Base, selector Selector) *Matcher {
	if base == nil {
		base = DefaultBase()
	}
	if selector == nil {
		selector = RandomSelector{}
	}
	return &Matcher{base: base, selector: selector}
}

// TableOrder returns the tables consulted for a category, in priority order
func TableOrder(category conversation.Category) []TableName {
	switch category {
	case conversation.CategoryServiceExplanation:
		return []TableName{TableServices, TableNavigation}
	case conversation.CategoryNavigationGuidance:
		return []TableName{TableNavigation}
	case conversation.CategoryStatusInquiries:
		return []TableName{TableStatus}
	default:
		return []TableName{TableNavigation, TableServices, TableStatus}
	}
}

// Match checks the tables in category order. Within the first table that has
// a matching item, the first such item answers with one of its responses.
func (m *Matcher) Match(message string, category conversation.Category) (Match, bool) {
	lower := strings.ToLower(message)

	for _, table := range TableOrder(category) {
		item, ok := firstMatch(m.base.Table(table), lower)
		if !ok {
			continue
		}
		return Match{
			Table:    table,
			Response: item.Responses[m.pick(len(item.Responses))],
		}, true
	}
	return Match{}, false
}

// pick guards against selectors returning an out-of-range index
func (m *Matcher) pick(n int) int {
	i := m.selector.Pick(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

func firstMatch(items []Item, lowerMessage string) (Item, bool) {
	for _, item := range items {
		if len(item.Responses) == 0 {
			continue
		}
		for _, keyword := range item.Keywords {
			keyword = strings.ToLower(keyword)
			if keyword != "" && strings.Contains(lowerMessage, keyword) {
				return item, true
			}
		}
	}
	return Item{}, false
}

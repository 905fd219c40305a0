package conversation

import (
	"strings"
)

// Category is the topic hint the widget attaches to a request. It is never
// inferred from the message text.
type Category string

const (
	CategoryNone               Category = ""
	CategoryNavigationGuidance Category = "Navigation Guidance"
	CategoryServiceExplanation Category = "Service Explanation"
	CategoryStatusInquiries    Category = "Status Inquiries"
)

// Categories lists the supported categories in display order
var Categories = []Category{
	CategoryNavigationGuidance,
	CategoryServiceExplanation,
	CategoryStatusInquiries,
}

// ParseCategory accepts display names ("Status Inquiries"), snake case
// ("status_inquiries"), camel case ("StatusInquiries") and short aliases
// ("status"). Anything else maps to CategoryNone.
func ParseCategory(raw string) Category {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)

	switch key {
	case "navigationguidance", "navigation":
		return CategoryNavigationGuidance
	case "serviceexplanation", "service", "services":
		return CategoryServiceExplanation
	case "statusinquiries", "statusinquiry", "status":
		return CategoryStatusInquiries
	default:
		return CategoryNone
	}
}

// IsNone reports whether no (recognized) category was supplied
func (c Category) IsNone() bool {
	switch c {
	case CategoryNavigationGuidance, CategoryServiceExplanation, CategoryStatusInquiries:
		return false
	default:
		return true
	}
}

func (c Category) String() string {
	if c.IsNone() {
		return "none"
	}
	return string(c)
}

package knowledge

import (
	"errors"
	"os"
	"strings"

	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/utils"
)

// TableName identifies one of the three keyword tables
type TableName string

const (
	TableNavigation TableName = "navigation"
	TableServices   TableName = "services"
	TableStatus     TableName = "status"
)

// Item maps a set of keywords to candidate responses. An item with keywords
// but no responses never matches.
type Item struct {
	Keywords  []string `json:"keywords" yaml:"keywords"`
	Responses []string `json:"responses" yaml:"responses"`
}

// Base holds the three tables. It is built once at startup and only read
// afterwards.
type Base struct {
	Navigation []Item `json:"navigation" yaml:"navigation"`
	Services   []Item `json:"services" yaml:"services"`
	Status     []Item `json:"status" yaml:"status"`
}

// Table returns the items of the named table
func (b *Base) Table(name TableName) []Item {
	switch name {
	case TableNavigation:
		return b.Navigation
	case TableServices:
		return b.Services
	case TableStatus:
		return b.Status
	default:
		return nil
	}
}

// Size returns the total number of items across all tables
func (b *Base) Size() int {
	return len(b.Navigation) + len(b.Services) + len(b.Status)
}

// Load reads a knowledge base from a JSON or YAML file. Any failure, including
// a document with no items, falls back to DefaultBase with a warning.
func Load(path string, log logger.ILogger) *Base {
	if strings.TrimSpace(path) == "" {
		log.Warn("KnowledgeBase", "No knowledge base path configured, using defaults", nil)
		return DefaultBase()
	}

	var base Base
	if err := utils.DecodeFile(path, &base); err != nil {
		details := map[string]interface{}{"path": path, "error": err.Error()}
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("KnowledgeBase", "Knowledge base file not found, using defaults", details)
		} else {
			log.Warn("KnowledgeBase", "Error loading knowledge base, using defaults", details)
		}
		return DefaultBase()
	}

	if base.Size() == 0 {
		log.Warn("KnowledgeBase", "Knowledge base has no items, using defaults", map[string]interface{}{"path": path})
		return DefaultBase()
	}

	log.Info("KnowledgeBase", "Knowledge base loaded", map[string]interface{}{
		"path":             path,
		"navigation_items": len(base.Navigation),
		"services_items":   len(base.Services),
		"status_items":     len(base.Status),
	})
	return &base
}

// DefaultBase is the built-in knowledge used when no file can be loaded
func DefaultBase() *Base {
	return &Base{
		Navigation: []Item{
			{
				Keywords: []string{"where", "find", "navigate", "section", "service", "menu", "how to find", "where is", "location", "page"},
				Responses: []string{
					"To find a service in Absher, you can use the main menu at the top of the page. Services are organized by categories like Civil Affairs, Traffic, Labor, and more. You can also use the search bar to quickly find what you're looking for.",
					"In Absher, you can navigate to different services using the navigation menu. The main categories include: Civil Affairs (الأحوال المدنية), Traffic Services (المرور), Labor Services (العمل), and more. Click on any category to see available services.",
					"To navigate Absher, use the top navigation menu. You'll find services grouped by type. You can also use the search feature by typing keywords related to the service you need. What specific service are you looking for?",
				},
			},
		},
		Services: []Item{
			{
				Keywords: []string{"how", "explain", "what is", "what are", "how does", "how to", "steps", "process", "procedure", "guide"},
				Responses: []string{
					"I can explain how Absher services work! Each service has specific steps and requirements. Could you tell me which specific service you'd like me to explain? For example: ID renewal, passport application, work permit, etc.",
					"I'm here to provide clear explanations of Absher services. Each service follows a specific process with required documents and steps. What service would you like me to explain?",
					"I can walk you through how any Absher service works. Services typically require: logging in, selecting the service, providing required information, uploading documents if needed, and submitting. Which service are you interested in?",
				},
			},
		},
		Status: []Item{
			{
				Keywords: []string{"status", "check", "track", "where is", "progress", "update", "application status", "request status"},
				Responses: []string{
					"To check your request status in Absher: 1) Log in to your Absher account, 2) Go to 'My Services' or 'My Requests' section, 3) Find your application/request, 4) Click on it to see detailed status. You can also receive SMS notifications about status updates.",
					"You can check the status of any Absher request by logging in and going to the 'My Services' section. All your submitted applications and requests are listed there with their current status. Status updates are also sent via SMS.",
					"To track your application: Log in to Absher → My Services/My Requests → Find your application → View status. Statuses typically include: Submitted, Under Review, Approved, Rejected, or Completed. You'll receive notifications for updates.",
				},
			},
		},
	}
}

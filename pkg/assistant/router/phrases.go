package router

import (
	"fmt"
	"strings"
)

// IdentifierPrompt asks the user for the number needed to look up a status.
// It contains the ID-request phrases so the prompt is recognized in history.
const IdentifierPrompt = "I can check that for you. Please provide your ID number (national ID or iqama number) and I'll look up the status of your application."

var (
	statusInquiryPhrases = []string{
		"status",
		"check",
		"track",
		"progress",
		"update",
		"my application",
		"my request",
		"where is my",
		"follow up",
	}

	idRequestPhrases = []string{
		"id number",
		"national id",
		"identity number",
		"provide your id",
	}
)

func isStatusInquiry(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range statusInquiryPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// DefaultMessage is the last-resort reply asking the user to rephrase
func DefaultMessage(message string) string {
	const help = "Could you please rephrase your question? I can help you with Navigation Guidance, Service Explanation, or Status Inquiries."

	message = strings.TrimSpace(message)
	if message == "" {
		return help
	}
	return fmt.Sprintf("I understand you're asking about: %q. %s", message, help)
}

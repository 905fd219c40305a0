package dto

import (
	"time"

	"support-assistant-be/pkg/assistant/stats"
	"support-assistant-be/pkg/assistant/status"
)

type ChatMessageDTO struct {
	IsFromUser bool   `json:"is_from_user"`
	Text       string `json:"text" validate:"max=4000"`
}

type SendChatRequest struct {
	SessionId string `json:"session_id" validate:"omitempty,uuid"`
	Message   string `json:"message" validate:"max=4000"`
	Category  string `json:"category,omitempty" validate:"max=64"`
	// History overrides the stored conversation when present
	History []ChatMessageDTO `json:"history,omitempty" validate:"max=100,dive"`
}

type SendChatResponse struct {
	SessionId  string    `json:"session_id"`
	Reply      string    `json:"reply"`
	Strategy   string    `json:"strategy"`
	Category   string    `json:"category"`
	Identifier string    `json:"identifier,omitempty"`
	Table      string    `json:"table,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type GetChatHistoryResponse struct {
	SessionId string           `json:"session_id"`
	Messages  []ChatMessageDTO `json:"messages"`
}

type StatusLookupResponse struct {
	Identifier string         `json:"identifier"`
	Found      bool           `json:"found"`
	Record     *status.Record `json:"record,omitempty"`
	Reply      string         `json:"reply"`
}

type LoadDocumentRequest struct {
	Content string `json:"content" validate:"required,max=2000000"`
}

type LoadDocumentResponse struct {
	Loaded bool `json:"loaded"`
	Length int  `json:"length"`
}

type CategoryInformationResponse struct {
	Category    string `json:"category"`
	Information string `json:"information"`
}

type StatsResponse struct {
	stats.Snapshot
	DocumentLoaded      bool `json:"document_loaded"`
	GenerativeAvailable bool `json:"generative_available"`
}

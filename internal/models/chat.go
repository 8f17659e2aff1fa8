package models

import "time"

// Role of a chat message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Backend identifies which agent a chat turn is routed to.
type Backend string

const (
	BackendResearch Backend = "research"
	BackendCSV      Backend = "csv"
)

// Message is one entry in a chat transcript. Payload holds the verbatim
// backend response for assistant messages so the renderer can pick out
// cards and charts; Error carries the user-facing failure text instead
// when the turn failed.
type Message struct {
	ID        string                 `json:"id"`
	Role      Role                   `json:"role"`
	Backend   Backend                `json:"backend"`
	Text      string                 `json:"text,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Error     string                 `json:"error,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// ChatSession groups a transcript with the opaque CSV analysis handle
// issued by the CSV backend on upload.
type ChatSession struct {
	ID           string    `json:"id"`
	Backend      Backend   `json:"backend"`
	CSVSessionID string    `json:"csvSessionId,omitempty"`
	CSVFilename  string    `json:"csvFilename,omitempty"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

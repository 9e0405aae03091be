package types

import "time"

// TagsResponse is returned by GET /tags.
type TagsResponse struct {
	Models []Model `json:"models"`
}

// PullRequest is the body of POST /pull. Stream is always false: the client
// waits for the install to finish.
type PullRequest struct {
	// example: llama3.2:1b
	Name   string `json:"name" example:"llama3.2:1b"`
	Stream bool   `json:"stream"`
}

// PullResponse is the final status reported by POST /pull.
type PullResponse struct {
	// example: success
	Status    string `json:"status" example:"success"`
	Digest    string `json:"digest,omitempty"`
	Total     int64  `json:"total,omitempty"`
	Completed int64  `json:"completed,omitempty"`
}

// DeleteRequest is the body of DELETE /delete.
type DeleteRequest struct {
	// example: llama3.2:1b
	Model string `json:"model" example:"llama3.2:1b"`
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	// example: llama3.2:latest
	Model string `json:"model" example:"llama3.2:latest"`
	// example: Write a haiku about the ocean.
	Prompt string `json:"prompt" example:"Write a haiku about the ocean."`
	// If true, the server answers with newline-delimited JSON frames.
	Stream  bool     `json:"stream"`
	Options *Options `json:"options,omitempty"`
}

// GenerateResponse is the complete body (stream=false) or one frame
// (stream=true) of POST /generate. Response is nil when the field is absent.
type GenerateResponse struct {
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Response  *string   `json:"response,omitempty"`
	Done      bool      `json:"done,omitempty"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	// example: llama3.2:latest
	Model    string        `json:"model" example:"llama3.2:latest"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *Options      `json:"options,omitempty"`
}

// ChatResponse is the complete body or one streamed frame of POST /chat.
// Message is nil when the field is absent.
type ChatResponse struct {
	Model     string       `json:"model,omitempty"`
	CreatedAt time.Time    `json:"created_at,omitempty"`
	Message   *ChatMessage `json:"message,omitempty"`
	Done      bool         `json:"done,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

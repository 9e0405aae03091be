package types

import "fmt"

// Dashboard API payloads.

// ModelNamesResponse lists installed model names in registry order.
type ModelNamesResponse struct {
	Models []string `json:"models" example:"llama3.2:latest"`
}

// ModelInfoResponse is one model with its human-readable description.
type ModelInfoResponse struct {
	Model Model  `json:"model"`
	Text  string `json:"text"`
}

type CreateSessionRequest struct {
	Model string `json:"model,omitempty" example:"llama3.2:latest"`
}

// RenderedMessage is a transcript entry with its markdown rendered to HTML.
type RenderedMessage struct {
	Role    Role   `json:"role" example:"assistant"`
	Content string `json:"content"`
	HTML    string `json:"html"`
}

type SessionResponse struct {
	ID          string            `json:"id" example:"6f1c2a9e-3b7d-4c55-9a61-0c2f8e7d4b10"`
	Model       string            `json:"model"`
	Messages    []RenderedMessage `json:"messages"`
	Temperature *float64          `json:"temperature,omitempty"`
	NumPredict  *int              `json:"num_predict,omitempty"`
}

// SettingsRequest carries the advanced settings of the chat and generator
// pages. Unset fields leave the current value alone.
type SettingsRequest struct {
	Temperature *float64 `json:"temperature,omitempty" example:"0.7"`
	NumPredict  *int     `json:"num_predict,omitempty" example:"1000"`
}

// Settings bounds, as offered by the dashboard controls.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
	MinNumPredict  = 100
	MaxNumPredict  = 4000
)

// Options validates the settings and converts them to request options.
func (s SettingsRequest) Options() (*Options, error) {
	if t := s.Temperature; t != nil && (*t < MinTemperature || *t > MaxTemperature) {
		return nil, fmt.Errorf("temperature must be between %.0f and %.0f", MinTemperature, MaxTemperature)
	}
	if n := s.NumPredict; n != nil && (*n < MinNumPredict || *n > MaxNumPredict) {
		return nil, fmt.Errorf("num_predict must be between %d and %d", MinNumPredict, MaxNumPredict)
	}
	o := &Options{Temperature: s.Temperature, NumPredict: s.NumPredict}
	return o.OrNil(), nil
}

// ChatTurnRequest sends one user message. Stream defaults to true.
type ChatTurnRequest struct {
	Model   string `json:"model,omitempty" example:"llama3.2:latest"`
	Content string `json:"content" example:"Hello"`
	Stream  *bool  `json:"stream,omitempty"`
}

// GenerateTextRequest runs the text generator. Stream defaults to true.
type GenerateTextRequest struct {
	Model  string `json:"model,omitempty" example:"llama3.2:latest"`
	Prompt string `json:"prompt" example:"Write a haiku about Go"`
	Stream *bool  `json:"stream,omitempty"`
	SettingsRequest
}

// TurnEvent is one NDJSON line of a streamed reply. The last line has Done
// set and carries either the full Content or the Error text.
type TurnEvent struct {
	Delta   string `json:"delta,omitempty"`
	Done    bool   `json:"done,omitempty"`
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

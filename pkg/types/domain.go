package types

import "time"

// Model describes one installed model as reported by the tags endpoint.
type Model struct {
	// Tag-qualified model name, unique within the registry.
	// example: llama3.2:latest
	Name string `json:"name" example:"llama3.2:latest"`
	// Model reference (usually identical to Name).
	// example: llama3.2:latest
	Model string `json:"model,omitempty" example:"llama3.2:latest"`
	// Size of the model weights in bytes.
	// example: 2019393189
	Size int64 `json:"size" example:"2019393189"`
	// Last modification time reported by the server.
	ModifiedAt time.Time `json:"modified_at"`
	// Content digest of the model manifest.
	// example: a80c4f17acd55265feec403c7aef86be0c25983ab279d83f3bcd3abbcb5b8b72
	Digest string `json:"digest" example:"a80c4f17acd55265feec403c7aef86be0c25983ab279d83f3bcd3abbcb5b8b72"`
	// Opaque model metadata.
	Details ModelDetails `json:"details"`
}

// ModelDetails carries the opaque metadata strings attached to a model.
type ModelDetails struct {
	ParentModel string `json:"parent_model,omitempty"`
	// example: gguf
	Format string `json:"format,omitempty" example:"gguf"`
	// example: llama
	Family   string   `json:"family,omitempty" example:"llama"`
	Families []string `json:"families,omitempty"`
	// example: 3.2B
	ParameterSize string `json:"parameter_size,omitempty" example:"3.2B"`
	// example: Q4_K_M
	QuantizationLevel string `json:"quantization_level,omitempty" example:"Q4_K_M"`
}

// IsZero reports whether no detail field is populated.
func (d ModelDetails) IsZero() bool {
	return d.ParentModel == "" && d.Format == "" && d.Family == "" &&
		len(d.Families) == 0 && d.ParameterSize == "" && d.QuantizationLevel == ""
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// ChatMessage is one entry of a conversation.
type ChatMessage struct {
	// example: user
	Role Role `json:"role" example:"user"`
	// example: Why is the sky blue?
	Content string `json:"content" example:"Why is the sky blue?"`
}

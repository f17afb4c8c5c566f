package domain

// ChatMessageRole represents the role of a chat message sent to an OpenAI-compatible backend
type ChatMessageRole string

const (
	// ChatMessageRoleSystem - System instructions
	ChatMessageRoleSystem ChatMessageRole = "system"
	// ChatMessageRoleUser - User content
	ChatMessageRoleUser ChatMessageRole = "user"
	// ChatMessageRoleAssistant - Model output
	ChatMessageRoleAssistant ChatMessageRole = "assistant"
)

// ChatMessage represents a single chat completion message
type ChatMessage struct {
	Role    ChatMessageRole
	Content string
}

// ChatCompletionRequest represents a chat completion call
type ChatCompletionRequest struct {
	Messages    []ChatMessage
	Model       *string
	Temperature *float64
}

// ChatCompletionResponse represents a chat completion result
type ChatCompletionResponse struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ModelInfo describes a model advertised by the backend
type ModelInfo struct {
	ID      string
	Object  string
	OwnedBy string
}

// GenerationRequest is one stateless call to the text-generation backend.
// The full context is resent every call.
type GenerationRequest struct {
	SystemInstruction string
	Prompt            string
	Temperature       *float64
}

// GenerationResponse is the generated text plus usage metadata
type GenerationResponse struct {
	Content     string
	Model       string
	TotalTokens int
}

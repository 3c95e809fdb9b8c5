package models

// Reply is a unified extraction response model compatible with both the
// Bedrock Converse API and OpenAI chat completions. Fields are zero when a
// backend does not provide them.
type Reply struct {
	// Text is the concatenated textual content of the model's answer.
	Text string `json:"text"`

	// Model name that produced the answer
	Model string `json:"model,omitempty"`

	// StopReason such as "end_turn" or "max_tokens"
	StopReason string `json:"stop_reason,omitempty"`

	// Usage token accounting
	Usage Usage `json:"usage,omitempty"`
}

// Usage aligns with token accounting from both APIs.
type Usage struct {
	InputTokens  int32 `json:"input_tokens,omitempty"`
	OutputTokens int32 `json:"output_tokens,omitempty"`
	TotalTokens  int32 `json:"total_tokens,omitempty"`
}

// GenerationParams carries the tunables of a text-to-image request.
// Seed nil means the model picks one.
type GenerationParams struct {
	Width    int
	Height   int
	CFGScale float64
	Quality  string
	Seed     *int64
}

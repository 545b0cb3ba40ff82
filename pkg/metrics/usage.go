package metrics

// TokenUsage captures LLM token counts used to satisfy a request.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens,omitempty"`
	TotalTokens      int `json:"totalTokens"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// ObserveTokens adds the usage to the token counters. Zero usage is ignored.
func ObserveTokens(provider string, u TokenUsage) {
	if u.IsZero() {
		return
	}
	LLMTokens.WithLabelValues(provider, "prompt").Add(float64(u.PromptTokens))
	LLMTokens.WithLabelValues(provider, "completion").Add(float64(u.CompletionTokens))
	LLMTokens.WithLabelValues(provider, "total").Add(float64(u.TotalTokens))
}

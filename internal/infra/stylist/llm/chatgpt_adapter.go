package llm

import (
	"context"
	"strings"
	"time"

	"github.com/yanqian/vibecast/internal/domain/stylist"
	"github.com/yanqian/vibecast/internal/infra/llm/chatgpt"
	"github.com/yanqian/vibecast/pkg/metrics"
)

// ChatCompletionClient is the subset of the ChatGPT client the adapter needs.
type ChatCompletionClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// ChatGPTModel adapts the ChatGPT client to the stylist domain.
type ChatGPTModel struct {
	client ChatCompletionClient
}

// NewChatGPTModel constructs the adapter.
func NewChatGPTModel(client ChatCompletionClient) *ChatGPTModel {
	return &ChatGPTModel{client: client}
}

// Name implements stylist.ModelClient.
func (m *ChatGPTModel) Name() string { return "chatgpt" }

// GenerateJSON sends the prompt with a json_schema response format.
func (m *ChatGPTModel) GenerateJSON(ctx context.Context, req stylist.StructuredRequest) (reply stylist.StructuredReply, err error) {
	defer func(start time.Time) { metrics.ObserveUpstream("chatgpt", start, err) }(time.Now())

	messages := make([]chatgpt.Message, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, chatgpt.Message{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatgpt.Message{Role: "user", Content: req.Prompt})

	completion := chatgpt.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxOutputTokens,
	}
	if req.Schema != nil {
		completion.ResponseFormat = &chatgpt.ResponseFormat{
			Type: "json_schema",
			JSONSchema: &chatgpt.JSONSchema{
				Name:   req.SchemaName,
				Strict: true,
				Schema: toJSONSchema(req.Schema),
			},
		}
	}

	resp, err := m.client.CreateChatCompletion(ctx, completion)
	if err != nil {
		return stylist.StructuredReply{}, err
	}
	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	if len(resp.Choices) == 0 {
		return stylist.StructuredReply{Usage: usage}, nil
	}
	return stylist.StructuredReply{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Usage: usage,
	}, nil
}

// toJSONSchema renders the strict-mode flavour of JSON schema: every object is closed.
// Item counts are left to the description since strict mode rejects them on some models.
func toJSONSchema(s *stylist.Schema) map[string]any {
	out := map[string]any{"type": s.Type}
	if s.Description != "" {
		out["description"] = s.Description
	}
	switch s.Type {
	case stylist.TypeObject:
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = toJSONSchema(prop)
		}
		out["properties"] = props
		out["required"] = s.Required
		out["additionalProperties"] = false
	case stylist.TypeArray:
		if s.Items != nil {
			out["items"] = toJSONSchema(s.Items)
		}
	}
	return out
}

var _ stylist.ModelClient = (*ChatGPTModel)(nil)

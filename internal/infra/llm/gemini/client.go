// Package gemini adapts Google's Gemini API to the stylist domain.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yanqian/vibecast/internal/domain/stylist"
	"github.com/yanqian/vibecast/pkg/metrics"
)

// DefaultModel is used when neither the client nor the request names a model.
const DefaultModel = "gemini-2.5-flash"

// Client calls Gemini through the official SDK.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates the SDK client once; it is safe for concurrent use.
func NewClient(ctx context.Context, apiKey, baseURL, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg := &genai.ClientConfig{
		Backend:    genai.BackendGeminiAPI,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Name implements stylist.ModelClient.
func (c *Client) Name() string { return "gemini" }

// GenerateJSON requests an application/json reply constrained by the schema.
func (c *Client) GenerateJSON(ctx context.Context, req stylist.StructuredRequest) (reply stylist.StructuredReply, err error) {
	defer func(start time.Time) { metrics.ObserveUpstream("gemini", start, err) }(time.Now())

	modelName := req.Model
	if modelName == "" {
		modelName = c.model
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	modelName = strings.TrimPrefix(modelName, "models/")

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if req.Schema != nil {
		genConfig.ResponseSchema = toGenaiSchema(req.Schema)
	}
	if req.Temperature > 0 {
		temperature := req.Temperature
		genConfig.Temperature = &temperature
	}
	if req.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.SystemPrompt != "" {
		genConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.Prompt}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, modelName, contents, genConfig)
	if err != nil {
		return stylist.StructuredReply{}, fmt.Errorf("gemini generate content: %w", err)
	}
	return stylist.StructuredReply{Text: extractText(resp), Usage: usageOf(resp)}, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}

func usageOf(resp *genai.GenerateContentResponse) metrics.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return metrics.TokenUsage{}
	}
	u := resp.UsageMetadata
	return metrics.TokenUsage{
		PromptTokens:     int(u.PromptTokenCount),
		CompletionTokens: int(u.CandidatesTokenCount),
		TotalTokens:      int(u.TotalTokenCount),
	}
}

func toGenaiSchema(s *stylist.Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
		out.Required = s.Required
		out.PropertyOrdering = s.Ordering
	}
	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}
	if s.MinItems > 0 {
		minItems := int64(s.MinItems)
		out.MinItems = &minItems
	}
	if s.MaxItems > 0 {
		maxItems := int64(s.MaxItems)
		out.MaxItems = &maxItems
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case stylist.TypeObject:
		return genai.TypeObject
	case stylist.TypeArray:
		return genai.TypeArray
	default:
		return genai.TypeString
	}
}

var _ stylist.ModelClient = (*Client)(nil)

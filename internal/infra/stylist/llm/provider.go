package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/vibecast/internal/domain/stylist"
	"github.com/yanqian/vibecast/internal/infra/llm/chatgpt"
	"github.com/yanqian/vibecast/internal/infra/llm/gemini"
)

// Settings selects and configures a provider.
type Settings struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// DefaultModel names the model used when none is configured.
func DefaultModel(provider string) string {
	switch provider {
	case "chatgpt":
		return chatgpt.DefaultModel
	case "gemini":
		return gemini.DefaultModel
	default:
		return ""
	}
}

// NewModelClient builds the configured provider. Unknown providers and missing credentials
// degrade to DisabledModel so advice falls back instead of failing startup.
func NewModelClient(ctx context.Context, s Settings, logger *slog.Logger) stylist.ModelClient {
	logger = logger.With("component", "stylist.llm")
	switch s.Provider {
	case "chatgpt":
		client, err := chatgpt.NewClient(s.APIKey, s.BaseURL, s.Timeout)
		if err != nil {
			logger.Warn("chatgpt client unavailable, advice will use fallback", "error", err)
			return DisabledModel{}
		}
		logger.Info("advice provider enabled", "provider", "chatgpt")
		return NewChatGPTModel(client)
	case "gemini":
		client, err := gemini.NewClient(ctx, s.APIKey, s.BaseURL, s.Model, s.Timeout)
		if err != nil {
			logger.Warn("gemini client unavailable, advice will use fallback", "error", err)
			return DisabledModel{}
		}
		logger.Info("advice provider enabled", "provider", "gemini")
		return client
	default:
		logger.Info("advice provider disabled", "provider", s.Provider)
		return DisabledModel{}
	}
}

package stylist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yanqian/vibecast/internal/domain/weather"
	apperrors "github.com/yanqian/vibecast/pkg/errors"
	"github.com/yanqian/vibecast/pkg/metrics"
)

const defaultPersona = `You are a high-end, witty fashion stylist and lifestyle planner ("VibeCast").`

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Service produces advice for a weather snapshot. It never fails: any model problem
// yields Fallback().
type Service interface {
	Generate(ctx context.Context, snapshot weather.Snapshot) Advice
}

// ModelClient is a language model able to answer with schema constrained JSON.
type ModelClient interface {
	Name() string
	GenerateJSON(ctx context.Context, req StructuredRequest) (StructuredReply, error)
}

type service struct {
	cfg    Config
	client ModelClient
	logger *slog.Logger
}

// NewService wires up the advice generator.
func NewService(cfg Config, client ModelClient, logger *slog.Logger) Service {
	return &service{cfg: cfg, client: client, logger: logger.With("component", "stylist.service")}
}

func (s *service) Generate(ctx context.Context, snapshot weather.Snapshot) Advice {
	advice, reason, err := s.generate(ctx, snapshot)
	if err != nil {
		s.logger.Error("advice generation failed, serving fallback",
			"provider", s.client.Name(), "reason", reason, "location", snapshot.LocationName, "error", err)
		metrics.AdviceFallbacks.WithLabelValues(reason).Inc()
		return Fallback()
	}
	return advice
}

func (s *service) generate(ctx context.Context, snapshot weather.Snapshot) (Advice, string, error) {
	reply, err := s.client.GenerateJSON(ctx, StructuredRequest{
		Model:           s.cfg.Model,
		SystemPrompt:    s.persona(),
		Prompt:          BuildPrompt(snapshot),
		SchemaName:      "style_advice",
		Schema:          AdviceSchema(),
		Temperature:     s.cfg.Temperature,
		MaxOutputTokens: s.cfg.MaxOutputTokens,
	})
	if err != nil {
		return Advice{}, "transport", apperrors.Wrap(apperrors.CodeAdvice, "model request failed", err)
	}
	metrics.ObserveTokens(s.client.Name(), reply.Usage)

	if strings.TrimSpace(reply.Text) == "" {
		return Advice{}, "empty", apperrors.Wrap(apperrors.CodeAdvice, "empty response from model", nil)
	}
	s.logger.Debug("advice reply received", "provider", s.client.Name(), "content", reply.Text)

	advice, err := parseAdvice(reply.Text)
	if err != nil {
		return Advice{}, "malformed", apperrors.Wrap(apperrors.CodeAdvice, "model response malformed", err)
	}
	return advice, "", nil
}

func (s *service) persona() string {
	if p := strings.TrimSpace(s.cfg.Prompt); p != "" {
		return p
	}
	return defaultPersona
}

// BuildPrompt renders the conditions block sent to the model.
func BuildPrompt(snapshot weather.Snapshot) string {
	timeOfDay := "Nighttime"
	if snapshot.IsDay {
		timeOfDay = "Daytime"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current Conditions in %s:\n", snapshot.LocationName)
	fmt.Fprintf(&b, "- Temperature: %s°C\n", formatNumber(snapshot.Temperature))
	fmt.Fprintf(&b, "- Condition: %s\n", weather.DescribeCode(snapshot.WeatherCode))
	fmt.Fprintf(&b, "- Wind: %s km/h\n", formatNumber(snapshot.WindSpeed))
	fmt.Fprintf(&b, "- Humidity: %d%%\n", snapshot.Humidity)
	fmt.Fprintf(&b, "- Time: %s\n\n", timeOfDay)
	b.WriteString("Provide a JSON response with:\n")
	b.WriteString("1. A short, witty \"Vibe Description\" of the weather (max 1 sentence).\n")
	b.WriteString("2. A specific outfit suggestion suitable for these conditions (modern, stylish).\n")
	b.WriteString("3. A recommended activity (indoor/outdoor based on weather).\n")
	b.WriteString("4. A color palette of 3 hex codes that matches the mood.\n")
	b.WriteString("5. A single emoji that represents the vibe.\n")
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseAdvice(raw string) (Advice, error) {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	sanitized = strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))

	var advice Advice
	if err := json.Unmarshal([]byte(sanitized), &advice); err != nil {
		return Advice{}, err
	}

	advice.VibeDescription = strings.TrimSpace(advice.VibeDescription)
	advice.OutfitSuggestion = strings.TrimSpace(advice.OutfitSuggestion)
	advice.ActivityRecommendation = strings.TrimSpace(advice.ActivityRecommendation)
	advice.Emoji = strings.TrimSpace(advice.Emoji)

	switch {
	case advice.VibeDescription == "":
		return Advice{}, errors.New("vibeDescription missing")
	case advice.OutfitSuggestion == "":
		return Advice{}, errors.New("outfitSuggestion missing")
	case advice.ActivityRecommendation == "":
		return Advice{}, errors.New("activityRecommendation missing")
	case advice.Emoji == "":
		return Advice{}, errors.New("emoji missing")
	case uniseg.GraphemeClusterCount(advice.Emoji) != 1:
		return Advice{}, fmt.Errorf("emoji %q is not a single character", advice.Emoji)
	case len(advice.ColorPalette) != PaletteSize:
		return Advice{}, fmt.Errorf("colorPalette has %d entries, want %d", len(advice.ColorPalette), PaletteSize)
	}

	for i, c := range advice.ColorPalette {
		c = strings.TrimSpace(c)
		if !hexColor.MatchString(c) {
			return Advice{}, fmt.Errorf("colorPalette[%d] %q is not a hex color", i, c)
		}
		if !strings.HasPrefix(c, "#") {
			c = "#" + c
		}
		advice.ColorPalette[i] = c
	}
	return advice, nil
}

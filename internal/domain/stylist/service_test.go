package stylist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/vibecast/internal/domain/weather"
)

func TestGenerateSuccess(t *testing.T) {
	client := &stubModelClient{reply: StructuredReply{Text: `{"vibeDescription":"Sticky but sunny.","outfitSuggestion":"Linen shirt and loafers","activityRecommendation":"Sunset walk along the river","colorPalette":["#FFB347","ffcc33","#87CEEB"],"emoji":"😎"}`}}
	svc := newServiceUnderTest(client)

	got := svc.Generate(context.Background(), tokyoSnapshot())
	require.Equal(t, "Sticky but sunny.", got.VibeDescription)
	require.Equal(t, "Linen shirt and loafers", got.OutfitSuggestion)
	require.Equal(t, "Sunset walk along the river", got.ActivityRecommendation)
	require.Equal(t, []string{"#FFB347", "#ffcc33", "#87CEEB"}, got.ColorPalette)
	require.Equal(t, "😎", got.Emoji)

	require.Equal(t, 1, client.calls)
	require.Equal(t, "gemini-test", client.last.Model)
	require.Equal(t, "Be stylish.", client.last.SystemPrompt)
	require.Contains(t, client.last.Prompt, "Current Conditions in Tokyo, Japan:")
	require.Contains(t, client.last.Prompt, "- Condition: Slight rain showers")
	require.NotNil(t, client.last.Schema)
	require.Len(t, client.last.Schema.Required, 5)
}

func TestGenerateFallsBack(t *testing.T) {
	tests := map[string]*stubModelClient{
		"transport failure": {err: errors.New("dial tcp: i/o timeout")},
		"empty response":    {reply: StructuredReply{Text: "   "}},
		"malformed json":    {reply: StructuredReply{Text: `{"vibeDescription": "half`}},
		"short palette":     {reply: StructuredReply{Text: `{"vibeDescription":"a","outfitSuggestion":"b","activityRecommendation":"c","colorPalette":["#000000"],"emoji":"☔"}`}},
		"missing field":     {reply: StructuredReply{Text: `{"vibeDescription":"a","activityRecommendation":"c","colorPalette":["#000","#111","#222"],"emoji":"☔"}`}},
		"several emoji":     {reply: StructuredReply{Text: `{"vibeDescription":"a","outfitSuggestion":"b","activityRecommendation":"c","colorPalette":["#000","#111","#222"],"emoji":"😎☔"}`}},
		"word for emoji":    {reply: StructuredReply{Text: `{"vibeDescription":"a","outfitSuggestion":"b","activityRecommendation":"c","colorPalette":["#000","#111","#222"],"emoji":"sunny"}`}},
		"bad color":         {reply: StructuredReply{Text: `{"vibeDescription":"a","outfitSuggestion":"b","activityRecommendation":"c","colorPalette":["red","#111","#222"],"emoji":"☔"}`}},
	}
	for name, client := range tests {
		t.Run(name, func(t *testing.T) {
			got := newServiceUnderTest(client).Generate(context.Background(), tokyoSnapshot())
			require.Equal(t, Fallback(), got)
		})
	}
}

func TestFallbackIsFreshCopy(t *testing.T) {
	a := Fallback()
	a.ColorPalette[0] = "#FFFFFF"
	require.Equal(t, "#808080", Fallback().ColorPalette[0])
}

func TestParseAdviceStripsFences(t *testing.T) {
	raw := "```json\n{\"vibeDescription\":\"Moody\",\"outfitSuggestion\":\"Trench\",\"activityRecommendation\":\"Museum\",\"colorPalette\":[\"#333\",\"#666\",\"#999\"],\"emoji\":\"🌧️\"}\n```"
	got, err := parseAdvice(raw)
	require.NoError(t, err)
	require.Equal(t, "Moody", got.VibeDescription)
	require.Equal(t, []string{"#333", "#666", "#999"}, got.ColorPalette)
}

func TestParseAdviceAcceptsComposedEmoji(t *testing.T) {
	for _, emoji := range []string{"🌧️", "👨‍👩‍👧", "🇯🇵"} {
		raw := `{"vibeDescription":"a","outfitSuggestion":"b","activityRecommendation":"c","colorPalette":["#000","#111","#222"],"emoji":"` + emoji + `"}`
		got, err := parseAdvice(raw)
		require.NoError(t, err, emoji)
		require.Equal(t, emoji, got.Emoji)
	}
}

func TestBuildPrompt(t *testing.T) {
	night := weather.Snapshot{Temperature: -3.5, WeatherCode: 71, WindSpeed: 20, Humidity: 90, IsDay: false, LocationName: "Oslo"}
	prompt := BuildPrompt(night)

	require.Contains(t, prompt, "Current Conditions in Oslo:")
	require.Contains(t, prompt, "- Temperature: -3.5°C")
	require.Contains(t, prompt, "- Condition: Slight snow fall")
	require.Contains(t, prompt, "- Wind: 20 km/h")
	require.Contains(t, prompt, "- Humidity: 90%")
	require.Contains(t, prompt, "- Time: Nighttime")
	require.Contains(t, prompt, "color palette of 3 hex codes")
}

func TestDefaultPersona(t *testing.T) {
	client := &stubModelClient{err: errors.New("down")}
	svc := NewService(Config{}, client, newTestLogger())
	svc.Generate(context.Background(), tokyoSnapshot())
	require.Equal(t, defaultPersona, client.last.SystemPrompt)
}

func newServiceUnderTest(client ModelClient) Service {
	return NewService(Config{Model: "gemini-test", Temperature: 0.7, Prompt: "Be stylish."}, client, newTestLogger())
}

func tokyoSnapshot() weather.Snapshot {
	return weather.Snapshot{Temperature: 28.4, WeatherCode: 80, WindSpeed: 12.3, Humidity: 74, IsDay: true, LocationName: "Tokyo, Japan"}
}

type stubModelClient struct {
	reply StructuredReply
	err   error
	calls int
	last  StructuredRequest
}

func (s *stubModelClient) Name() string { return "stub" }

func (s *stubModelClient) GenerateJSON(ctx context.Context, req StructuredRequest) (StructuredReply, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return StructuredReply{}, s.err
	}
	return s.reply, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/yanqian/vibecast/internal/domain/stylist"
)

func TestToGenaiSchema(t *testing.T) {
	schema := toGenaiSchema(stylist.AdviceSchema())

	require.Equal(t, genai.TypeObject, schema.Type)
	require.Len(t, schema.Properties, 5)
	require.Equal(t, []string{"vibeDescription", "outfitSuggestion", "activityRecommendation", "colorPalette", "emoji"}, schema.PropertyOrdering)

	palette := schema.Properties["colorPalette"]
	require.Equal(t, genai.TypeArray, palette.Type)
	require.Equal(t, genai.TypeString, palette.Items.Type)
	require.NotNil(t, palette.MinItems)
	require.Equal(t, int64(3), *palette.MinItems)
	require.Equal(t, int64(3), *palette.MaxItems)
}

func TestExtractTextAndUsage(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: `{"emoji":`}, {Text: `"🌈"}`}}}},
		},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{PromptTokenCount: 11, CandidatesTokenCount: 4, TotalTokenCount: 15},
	}
	require.Equal(t, `{"emoji":"🌈"}`, extractText(resp))
	require.Equal(t, 15, usageOf(resp).TotalTokens)

	require.Empty(t, extractText(nil))
	require.Empty(t, extractText(&genai.GenerateContentResponse{}))
	require.True(t, usageOf(&genai.GenerateContentResponse{}).IsZero())
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", "", time.Second)
	require.Error(t, err)
}

func TestGenerateJSONAgainstFakeServer(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"emoji\":\"⛅\"}"}]},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":9,"candidatesTokenCount":3,"totalTokenCount":12}}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), "test-key", srv.URL, "gemini-test", time.Second)
	require.NoError(t, err)

	reply, err := client.GenerateJSON(context.Background(), stylist.StructuredRequest{Prompt: "conditions", Schema: stylist.AdviceSchema()})
	require.NoError(t, err)
	require.Contains(t, gotPath, "gemini-test:generateContent")
	require.Equal(t, `{"emoji":"⛅"}`, reply.Text)
	require.Equal(t, 12, reply.Usage.TotalTokens)
}

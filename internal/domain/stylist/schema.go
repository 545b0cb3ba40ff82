package stylist

// AdviceSchema describes the five field reply the model must produce.
func AdviceSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"vibeDescription": {
				Type:        TypeString,
				Description: "A short, witty description of the weather vibe, one sentence at most",
			},
			"outfitSuggestion": {
				Type:        TypeString,
				Description: "A specific, modern outfit suitable for these conditions",
			},
			"activityRecommendation": {
				Type:        TypeString,
				Description: "An indoor or outdoor activity that fits the weather",
			},
			"colorPalette": {
				Type:        TypeArray,
				Description: "Array of 3 hex color strings",
				Items:       &Schema{Type: TypeString},
				MinItems:    PaletteSize,
				MaxItems:    PaletteSize,
			},
			"emoji": {
				Type:        TypeString,
				Description: "A single emoji that represents the vibe",
			},
		},
		Required: []string{"vibeDescription", "outfitSuggestion", "activityRecommendation", "colorPalette", "emoji"},
		Ordering: []string{"vibeDescription", "outfitSuggestion", "activityRecommendation", "colorPalette", "emoji"},
	}
}

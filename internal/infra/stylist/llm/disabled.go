package llm

import (
	"context"
	"errors"

	"github.com/yanqian/vibecast/internal/domain/stylist"
)

// ErrModelDisabled is returned when no language model credentials are configured.
var ErrModelDisabled = errors.New("language model disabled: no api key configured")

// DisabledModel stands in for a provider when no API key is configured. Every call fails,
// so the stylist serves its fallback advice.
type DisabledModel struct{}

// Name implements stylist.ModelClient.
func (DisabledModel) Name() string { return "disabled" }

// GenerateJSON always fails.
func (DisabledModel) GenerateJSON(context.Context, stylist.StructuredRequest) (stylist.StructuredReply, error) {
	return stylist.StructuredReply{}, ErrModelDisabled
}

var _ stylist.ModelClient = DisabledModel{}

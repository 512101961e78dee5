package sentiment

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/upstream"
)

const anthropicProvider = "anthropic"

// AnthropicScorer rates articles with a Claude model through the Messages API.
type AnthropicScorer struct {
	client anthropic.Client
	model  string
	caller *upstream.Caller
}

// NewAnthropicScorer builds an AnthropicScorer. SDK retries are disabled
// because the caller owns the retry policy.
func NewAnthropicScorer(apiKey, model string, caller *upstream.Caller, opts ...option.RequestOption) *AnthropicScorer {
	base := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	return &AnthropicScorer{
		client: anthropic.NewClient(append(base, opts...)...),
		model:  model,
		caller: caller,
	}
}

func (s *AnthropicScorer) Name() string { return anthropicProvider }

func (s *AnthropicScorer) Score(ctx context.Context, a models.NewsArticle) (float64, error) {
	prompt := BuildPrompt(a)
	return upstream.Call(ctx, s.caller, "messages", func(ctx context.Context) (float64, error) {
		message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(s.model),
			MaxTokens:   chatMaxTokens,
			Temperature: anthropic.Float(chatTemperature),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			var apiErr *anthropic.Error
			if errors.As(err, &apiErr) {
				return 0, upstream.NewError(anthropicProvider, "messages", kindForStatus(apiErr.StatusCode), apiErr.StatusCode, err)
			}
			return 0, upstream.NewError(anthropicProvider, "messages", upstream.ErrUnavailable, 0, err)
		}
		if len(message.Content) == 0 {
			return 0, upstream.NewError(anthropicProvider, "messages", upstream.ErrMalformed, 0, errors.New("empty content"))
		}
		text, ok := message.Content[0].AsAny().(anthropic.TextBlock)
		if !ok {
			return 0, upstream.NewError(anthropicProvider, "messages", upstream.ErrMalformed, 0, errors.New("unexpected content block"))
		}
		return ParseScore(text.Text), nil
	})
}

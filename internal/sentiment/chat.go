package sentiment

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/smartinvest/internal/domain/models"
	"github.com/guttosm/smartinvest/internal/upstream"
	openai "github.com/sashabaranov/go-openai"
)

const (
	chatProvider    = "friendli"
	chatMaxTokens   = 50
	chatTemperature = 0.1
)

// ChatScorer rates articles through an OpenAI-compatible chat completion
// endpoint (FriendliAI serverless by default).
type ChatScorer struct {
	client *openai.Client
	model  string
	caller *upstream.Caller
}

// NewChatScorer builds a ChatScorer.
//
// Parameters:
//   - apiKey: bearer token for the endpoint.
//   - baseURL: OpenAI-compatible base URL, including the /v1 suffix.
//   - model: model identifier, e.g. "meta-llama-3.1-8b-instruct".
//   - caller: resilience policy for the completion call.
//   - httpClient: transport; nil keeps the SDK default.
func NewChatScorer(apiKey, baseURL, model string, caller *upstream.Caller, httpClient *http.Client) *ChatScorer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &ChatScorer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		caller: caller,
	}
}

func (s *ChatScorer) Name() string { return chatProvider }

// Score asks the model for a rating and parses the first number of the reply.
func (s *ChatScorer) Score(ctx context.Context, a models.NewsArticle) (float64, error) {
	prompt := BuildPrompt(a)
	return upstream.Call(ctx, s.caller, "chat", func(ctx context.Context) (float64, error) {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			}},
			MaxTokens:   chatMaxTokens,
			Temperature: chatTemperature,
		})
		if err != nil {
			return 0, chatError(err)
		}
		if len(resp.Choices) == 0 {
			return 0, upstream.NewError(chatProvider, "chat", upstream.ErrMalformed, 0, errors.New("empty choices"))
		}
		return ParseScore(resp.Choices[0].Message.Content), nil
	})
}

func chatError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return upstream.NewError(chatProvider, "chat", kindForStatus(apiErr.HTTPStatusCode), apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return upstream.NewError(chatProvider, "chat", kindForStatus(reqErr.HTTPStatusCode), reqErr.HTTPStatusCode, err)
	}
	return upstream.NewError(chatProvider, "chat", upstream.ErrUnavailable, 0, err)
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAITextInvoker implements TextInvoker against the OpenAI chat
// completions endpoint. It performs exactly one request per Invoke call;
// retries belong to the wrapper.
type OpenAITextInvoker struct {
	client openai.Client
	model  string
}

// NewOpenAITextInvoker builds a text invoker for the given model. An empty
// apiKey defers to the OPENAI_API_KEY environment variable. baseURL is
// optional and overrides the default API host (useful for compatible
// gateways and for tests).
func NewOpenAITextInvoker(apiKey, model, baseURL string) *OpenAITextInvoker {
	var opts []option.RequestOption
	if strings.TrimSpace(apiKey) != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAITextInvoker{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Invoke sends one chat completion request and returns the assistant text.
func (c *OpenAITextInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", Classify(apierr.StatusCode, "text", err)
		}
		// Transport-level failure with no status: treat as transient.
		return "", &RateLimitError{UnderlyingErr: err}
	}

	if len(resp.Choices) == 0 {
		return "", &FatalError{Category: "text", UnderlyingErr: fmt.Errorf("no choices returned by model %s", c.model)}
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", &FatalError{Category: "text", UnderlyingErr: fmt.Errorf("empty completion from model %s", c.model)}
	}
	return out, nil
}

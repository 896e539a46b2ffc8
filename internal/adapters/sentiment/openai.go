package sentiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/PabloGalante/haven/internal/domain"
)

// NewOpenAIClassifier labels text with an OpenAI chat model.
func NewOpenAIClassifier(
	apiKey, model string,
	timeout time.Duration,
	fallback domain.SentimentProvider,
) (domain.SentimentProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(apiKey)

	complete := func(ctx context.Context, text string) (string, error) {
		resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: labelInstruction},
				{Role: openai.ChatMessageRoleUser, Content: text},
			},
			Temperature: 0,
			MaxTokens:   3,
		})
		if err != nil {
			return "", fmt.Errorf("openai chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("openai returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	}

	return &remoteClassifier{
		name:     "openai",
		complete: complete,
		timeout:  timeout,
		fallback: fallback,
	}, nil
}

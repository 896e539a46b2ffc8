package sentiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/PabloGalante/haven/internal/domain"
)

// NewGeminiClassifier labels text with a Gemini model through the GenAI
// API.
func NewGeminiClassifier(
	ctx context.Context,
	apiKey, model string,
	timeout time.Duration,
	fallback domain.SentimentProvider,
) (domain.SentimentProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash-lite"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GenAI client: %w", err)
	}

	temp := float32(0)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(labelInstruction, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   int32(5),
	}

	complete := func(ctx context.Context, text string) (string, error) {
		contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
		res, err := client.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			return "", fmt.Errorf("gemini generate content: %w", err)
		}
		return res.Text(), nil
	}

	return &remoteClassifier{
		name:     "gemini",
		complete: complete,
		timeout:  timeout,
		fallback: fallback,
	}, nil
}

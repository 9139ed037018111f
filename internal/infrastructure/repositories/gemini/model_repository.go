package gemini

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
)

const (
	modelName = "gemini"

	maxOutputTokens = 2048
	temperature     = 0.5
	topP            = 0.9
)

// API is the subset of genai.Models used by the model repository.
type API interface {
	GenerateContent(
		ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiModelRepository implements repositories.ModelRepository on the Gemini API
// with the same decoding parameters as the Bedrock backend.
type GeminiModelRepository struct {
	models API
	model  string
}

// NewGeminiModelRepository creates a repository over an existing models service.
func NewGeminiModelRepository(models API, model string) *GeminiModelRepository {
	return &GeminiModelRepository{models: models, model: model}
}

// NewModelRepository builds the repository from model settings.
func NewModelRepository(ctx context.Context, cfg entities.ModelConfig) (repositories.ModelRepository, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return NewGeminiModelRepository(client.Models, cfg.ID), nil
}

func (it *GeminiModelRepository) Name() string { return modelName }

// Invoke sends the prompt as a single user turn and returns the text of the answer.
func (it *GeminiModelRepository) Invoke(ctx context.Context, prompt string) (string, error) {
	logger.Debugf("[gemini] Invoking %s with a %d byte prompt", it.model, len(prompt))

	response, err := it.models.GenerateContent(ctx, it.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     float32Ptr(temperature),
		TopP:            float32Ptr(topP),
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return response.Text(), nil
}

func float32Ptr(value float32) *float32 { return &value }

package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
	"github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/awsconfig"
)

const (
	modelName   = "bedrock"
	contentType = "application/json"

	// Decoding parameters are part of the prompt contract, not configuration.
	maxGenLen   = 2048
	temperature = 0.5
	topP        = 0.9
)

var errEmptyBody = errors.New("bedrock returned an empty body")

// API is the subset of the Bedrock runtime client used by the model repository.
type API interface {
	InvokeModel(
		ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.InvokeModelOutput, error)
}

type llamaRequest struct {
	Prompt      string  `json:"prompt"`
	MaxGenLen   int     `json:"max_gen_len"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type llamaResponse struct {
	Generation string `json:"generation"`
}

// BedrockModelRepository implements repositories.ModelRepository with Llama-style
// text completion on Amazon Bedrock.
type BedrockModelRepository struct {
	client  API
	modelID string
}

// NewBedrockModelRepository creates a repository over an existing client.
func NewBedrockModelRepository(client API, modelID string) *BedrockModelRepository {
	return &BedrockModelRepository{client: client, modelID: modelID}
}

// NewModelRepository builds the repository from model settings.
func NewModelRepository(ctx context.Context, cfg entities.ModelConfig) (repositories.ModelRepository, error) {
	awsCfg, err := awsconfig.Load(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	client := bedrockruntime.NewFromConfig(awsCfg, func(o *bedrockruntime.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewBedrockModelRepository(client, cfg.ID), nil
}

func (it *BedrockModelRepository) Name() string { return modelName }

// Invoke sends the prompt and returns the generated text.
func (it *BedrockModelRepository) Invoke(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(llamaRequest{
		Prompt:      prompt,
		MaxGenLen:   maxGenLen,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	logger.Debugf("[bedrock] Invoking %s with a %d byte prompt", it.modelID, len(prompt))
	output, err := it.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(it.modelID),
		Body:        body,
		Accept:      aws.String(contentType),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke %s: %w", it.modelID, err)
	}
	if len(output.Body) == 0 {
		return "", errEmptyBody
	}

	var response llamaResponse
	if unmarshalErr := json.Unmarshal(output.Body, &response); unmarshalErr != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", it.modelID, unmarshalErr)
	}
	return response.Generation, nil
}

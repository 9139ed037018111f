package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/rios0rios0/cvefinder/internal/domain/commands"
	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/infrastructure/repositories"
)

// response mirrors the API Gateway proxy shape: the body is a JSON string.
type response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func newHandler(command commands.Ingest, settings *entities.Settings) func(context.Context, json.RawMessage) (response, error) {
	return func(ctx context.Context, event json.RawMessage) (response, error) {
		raw, err := entities.ParseScannerEvent(event)
		if err != nil {
			logger.Errorf("%v", err)
		}

		result := command.Execute(ctx, settings, raw)
		body, err := json.Marshal(result.Body)
		if err != nil {
			return response{}, fmt.Errorf("failed to encode response body: %w", err)
		}
		return response{StatusCode: result.StatusCode, Body: string(body)}, nil
	}
}

func loadSettings() *entities.Settings {
	cfgPath, err := entities.FindConfigFile()
	if err != nil {
		return entities.DefaultSettings()
	}

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		logger.Fatalf("failed to load config %s: %v", cfgPath, err)
	}
	return settings
}

func injectIngestCommand() commands.Ingest {
	container := dig.New()
	if err := repositories.RegisterProviders(container); err != nil {
		panic(err)
	}
	if err := commands.RegisterProviders(container); err != nil {
		panic(err)
	}

	var command commands.Ingest
	if err := container.Invoke(func(ingest commands.Ingest) {
		command = ingest
	}); err != nil {
		panic(err)
	}
	return command
}

func main() {
	//nolint:exhaustruct // Minimal JSONFormatter initialization with required fields only
	logger.SetFormatter(&logger.JSONFormatter{})

	lambda.Start(newHandler(injectIngestCommand(), loadSettings()))
}

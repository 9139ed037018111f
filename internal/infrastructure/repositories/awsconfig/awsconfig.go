// Package awsconfig loads the shared AWS configuration of every AWS-backed repository.
package awsconfig

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// localAccessKey is used against local endpoints (DynamoDB Local, LocalStack) when
// the environment carries no credentials.
const localAccessKey = "local"

// Load builds an aws.Config for the region. A non-empty endpoint marks a local
// emulator, which accepts any static credentials.
func Load(ctx context.Context, region, endpoint string) (aws.Config, error) {
	var awsOpts []func(*config.LoadOptions) error
	awsOpts = append(awsOpts, config.WithRegion(region))

	if endpoint != "" && os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		awsOpts = append(awsOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(localAccessKey, localAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, awsOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

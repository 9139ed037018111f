package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
	"github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/awsconfig"
)

const (
	partitionKey        = "ecr_repo_name"
	vulnerabilitiesAttr = "vulnerabilities"

	// appendExpression seeds the list on the first finding of a repository, so
	// UpdateItem creates the item when the key does not exist yet.
	appendExpression = "SET #vulnerabilities = list_append(if_not_exists(#vulnerabilities, :empty_list), :vulnerability)"
)

// API is the subset of the DynamoDB client used by the findings repository.
type API interface {
	GetItem(
		ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options),
	) (*dynamodb.GetItemOutput, error)
	UpdateItem(
		ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options),
	) (*dynamodb.UpdateItemOutput, error)
}

// DynamoDBFindingsRepository implements repositories.FindingsRepository on a
// DynamoDB table keyed by ecr_repo_name.
type DynamoDBFindingsRepository struct {
	client API
	table  string
}

// NewDynamoDBFindingsRepository creates a repository over an existing client.
func NewDynamoDBFindingsRepository(client API, table string) *DynamoDBFindingsRepository {
	return &DynamoDBFindingsRepository{client: client, table: table}
}

// NewFindingsRepository builds the repository from store settings.
func NewFindingsRepository(ctx context.Context, cfg entities.StoreConfig) (repositories.FindingsRepository, error) {
	awsCfg, err := awsconfig.Load(ctx, cfg.Region, cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewDynamoDBFindingsRepository(client, cfg.Table), nil
}

// Get returns the findings of a repository, or nil when the item does not exist.
func (it *DynamoDBFindingsRepository) Get(
	ctx context.Context,
	repositoryName string,
) (*entities.RepositoryFindings, error) {
	output, err := it.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(it.table),
		Key:            key(repositoryName),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, &entities.StoreAccessError{Err: fmt.Errorf("get item %q: %w", repositoryName, err)}
	}
	if output.Item == nil {
		return nil, nil //nolint:nilnil // absent item is not an error
	}

	findings := &entities.RepositoryFindings{}
	if unmarshalErr := attributevalue.UnmarshalMap(output.Item, findings); unmarshalErr != nil {
		return nil, &entities.StoreAccessError{Err: fmt.Errorf("decode item %q: %w", repositoryName, unmarshalErr)}
	}
	return findings, nil
}

// Append adds the record unless the current item already holds it. The membership
// check and the list_append are separate requests, see repositories.FindingsRepository.
func (it *DynamoDBFindingsRepository) Append(
	ctx context.Context,
	repositoryName string,
	record entities.VulnerabilityRecord,
) entities.AppendResult {
	current, err := it.Get(ctx, repositoryName)
	if err != nil {
		logger.Errorf("[dynamodb] Error reading %q before update: %v", repositoryName, err)
		return entities.AppendFailed(err)
	}
	if current.Contains(record) {
		logger.Infof("[dynamodb] Vulnerability %s already aggregated for %q, no update needed",
			record.CVEID, repositoryName)
		return entities.Duplicate()
	}

	encoded, err := attributevalue.Marshal(record)
	if err != nil {
		logger.Errorf("[dynamodb] Error encoding vulnerability for %q: %v", repositoryName, err)
		return entities.AppendFailed(err)
	}

	output, err := it.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(it.table),
		Key:                      key(repositoryName),
		UpdateExpression:         aws.String(appendExpression),
		ExpressionAttributeNames: map[string]string{"#vulnerabilities": vulnerabilitiesAttr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":vulnerability": &types.AttributeValueMemberL{Value: []types.AttributeValue{encoded}},
			":empty_list":    &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		logger.Errorf("[dynamodb] Error updating item %q: %v", repositoryName, err)
		return entities.AppendFailed(err)
	}

	logger.Infof("[dynamodb] Item %q updated successfully (%d attributes returned)",
		repositoryName, len(output.Attributes))
	return entities.Appended()
}

func key(repositoryName string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		partitionKey: &types.AttributeValueMemberS{Value: repositoryName},
	}
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
)

// API is the subset of the go-redis client used by the findings repository.
type API interface {
	LRange(ctx context.Context, key string, start, stop int64) *goredis.StringSliceCmd
	RPush(ctx context.Context, key string, values ...interface{}) *goredis.IntCmd
}

// RedisFindingsRepository keeps each repository's findings in a Redis list of
// JSON records. RPUSH is the atomic append and creates the list on first use.
type RedisFindingsRepository struct {
	client API
	prefix string
}

// NewRedisFindingsRepository creates a repository over an existing client.
func NewRedisFindingsRepository(client API, prefix string) *RedisFindingsRepository {
	return &RedisFindingsRepository{client: client, prefix: prefix}
}

// NewFindingsRepository builds the repository from store settings.
func NewFindingsRepository(_ context.Context, cfg entities.StoreConfig) (repositories.FindingsRepository, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
	})
	return NewRedisFindingsRepository(client, cfg.KeyPrefix), nil
}

// Get returns the findings of a repository, or nil when the list is empty.
func (it *RedisFindingsRepository) Get(
	ctx context.Context,
	repositoryName string,
) (*entities.RepositoryFindings, error) {
	values, err := it.client.LRange(ctx, it.prefix+repositoryName, 0, -1).Result()
	if err != nil {
		return nil, &entities.StoreAccessError{Err: fmt.Errorf("lrange %q: %w", repositoryName, err)}
	}
	if len(values) == 0 {
		return nil, nil //nolint:nilnil // absent list is not an error
	}

	findings := &entities.RepositoryFindings{
		RepositoryName:  repositoryName,
		Vulnerabilities: make([]entities.VulnerabilityRecord, 0, len(values)),
	}
	for _, value := range values {
		var record entities.VulnerabilityRecord
		if unmarshalErr := json.Unmarshal([]byte(value), &record); unmarshalErr != nil {
			return nil, &entities.StoreAccessError{Err: fmt.Errorf("decode %q: %w", repositoryName, unmarshalErr)}
		}
		findings.Vulnerabilities = append(findings.Vulnerabilities, record)
	}
	return findings, nil
}

// Append pushes the record unless the list already holds it. The check and the
// push are separate commands, see repositories.FindingsRepository.
func (it *RedisFindingsRepository) Append(
	ctx context.Context,
	repositoryName string,
	record entities.VulnerabilityRecord,
) entities.AppendResult {
	current, err := it.Get(ctx, repositoryName)
	if err != nil {
		logger.Errorf("[redis] Error reading %q before update: %v", repositoryName, err)
		return entities.AppendFailed(err)
	}
	if current.Contains(record) {
		logger.Infof("[redis] Vulnerability %s already aggregated for %q, no update needed",
			record.CVEID, repositoryName)
		return entities.Duplicate()
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		logger.Errorf("[redis] Error encoding vulnerability for %q: %v", repositoryName, err)
		return entities.AppendFailed(err)
	}

	length, err := it.client.RPush(ctx, it.prefix+repositoryName, string(encoded)).Result()
	if err != nil {
		logger.Errorf("[redis] Error appending to %q: %v", repositoryName, err)
		return entities.AppendFailed(err)
	}

	logger.Infof("[redis] List %q updated successfully (%d findings)", repositoryName, length)
	return entities.Appended()
}

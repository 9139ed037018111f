package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
	bedrockRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/bedrock"
	ccRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/codecommit"
	dynamoRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/dynamodb"
	geminiRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/gemini"
	gitRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/gitlab"
	redisRepo "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories/redis"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register store registry with all aggregation store factories
	if err := container.Provide(func() *StoreRegistry {
		reg := NewStoreRegistry()
		reg.Register(entities.StoreTypeDynamoDB, dynamoRepo.NewFindingsRepository)
		reg.Register(entities.StoreTypeRedis, redisRepo.NewFindingsRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register model registry with all text-generation backends
	if err := container.Provide(func() *ModelRegistry {
		reg := NewModelRegistry()
		reg.Register(entities.ModelTypeBedrock, bedrockRepo.NewModelRepository)
		reg.Register(entities.ModelTypeGemini, geminiRepo.NewModelRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register review registry with all pull-request hosts
	if err := container.Provide(func() *ReviewRegistry {
		reg := NewReviewRegistry()
		reg.Register(entities.ReviewCodeCommit, ccRepo.NewReviewRepository)
		reg.Register(entities.ReviewGitHub, ghRepo.NewReviewRepository)
		reg.Register(entities.ReviewGitLab, glRepo.NewReviewRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(func() repositories.VersionControlRepository {
		return gitRepo.NewGoGitVersionControlRepository()
	}); err != nil {
		return err
	}

	return nil
}

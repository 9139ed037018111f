//go:build unit

package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/cvefinder/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/cvefinder/test/infrastructure/repositorydoubles"
)

func TestFactoryRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build the registered backend once per configuration", func(t *testing.T) {
		t.Parallel()

		// given
		builds := 0
		registry := infraRepos.NewStoreRegistry()
		registry.Register("spy", func(_ context.Context, _ entities.StoreConfig) (repositories.FindingsRepository, error) {
			builds++
			return &doubles.SpyFindingsRepository{}, nil
		})
		cfg := entities.StoreConfig{Type: "spy", Table: "a"}

		// when
		first, err := registry.Get(context.Background(), "spy", cfg)
		require.NoError(t, err)
		second, err := registry.Get(context.Background(), "spy", cfg)
		require.NoError(t, err)
		_, err = registry.Get(context.Background(), "spy", entities.StoreConfig{Type: "spy", Table: "b"})
		require.NoError(t, err)

		// then
		assert.Same(t, first, second)
		assert.Equal(t, 2, builds)
	})

	t.Run("should fail for an unknown backend", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewModelRegistry()

		// when
		_, err := registry.Get(context.Background(), "openai", entities.ModelConfig{})

		// then
		assert.ErrorContains(t, err, "unknown backend type")
	})

	t.Run("should not cache a failed build", func(t *testing.T) {
		t.Parallel()

		// given
		attempts := 0
		registry := infraRepos.NewReviewRegistry()
		registry.Register("flaky", func(_ context.Context, _ entities.ReviewConfig) (repositories.ReviewRepository, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("no credentials")
			}
			return &doubles.SpyReviewRepository{}, nil
		})

		// when
		_, firstErr := registry.Get(context.Background(), "flaky", entities.ReviewConfig{})
		review, secondErr := registry.Get(context.Background(), "flaky", entities.ReviewConfig{})

		// then
		require.Error(t, firstErr)
		require.NoError(t, secondErr)
		assert.NotNil(t, review)
	})

	t.Run("should list registered names in order", func(t *testing.T) {
		t.Parallel()

		// given
		registry := infraRepos.NewReviewRegistry()
		for _, name := range []string{"gitlab", "codecommit", "github"} {
			registry.Register(name, func(_ context.Context, _ entities.ReviewConfig) (repositories.ReviewRepository, error) {
				return &doubles.SpyReviewRepository{}, nil
			})
		}

		// when
		names := registry.Names()

		// then
		assert.Equal(t, []string{"codecommit", "github", "gitlab"}, names)
	})
}

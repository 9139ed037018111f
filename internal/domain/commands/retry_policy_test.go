//go:build unit

package commands_test

import (
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/cvefinder/internal/domain/commands"
	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

func TestNewRetryPolicy(t *testing.T) {
	t.Parallel()

	t.Run("should not wait between attempts by default", func(t *testing.T) {
		t.Parallel()

		// when
		policy := commands.NewRetryPolicy(entities.RetryConfig{})

		// then
		assert.Zero(t, policy.MaxAttempts)
		assert.IsType(t, &backoff.ZeroBackOff{}, policy.BackOff)
		assert.Zero(t, policy.BackOff.NextBackOff())
	})

	t.Run("should back off exponentially from the initial interval", func(t *testing.T) {
		t.Parallel()

		// when
		policy := commands.NewRetryPolicy(entities.RetryConfig{
			MaxAttempts:     5,
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
		})

		// then
		assert.Equal(t, 5, policy.MaxAttempts)
		exponential, ok := policy.BackOff.(*backoff.ExponentialBackOff)
		assert.True(t, ok)
		assert.Equal(t, time.Second, exponential.InitialInterval)
		assert.Equal(t, 10*time.Second, exponential.MaxInterval)
	})
}

//go:build unit

package entities_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/test/domain/entitybuilders"
)

func TestVulnerabilityRecordMarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("should write absent fields as null", func(t *testing.T) {
		t.Parallel()

		// given
		record := entities.VulnerabilityRecord{LibraryName: "pip"}

		// when
		data, err := json.Marshal(record)

		// then
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"library_name":"pip","current_version":null,"fixed_in_version":null,"cve_id":null}`,
			string(data),
		)
	})
}

func TestRepositoryFindingsContains(t *testing.T) {
	t.Parallel()

	t.Run("should match structurally identical records only", func(t *testing.T) {
		t.Parallel()

		// given
		builder := entitybuilders.NewVulnerabilityRecordBuilder()
		findings := &entities.RepositoryFindings{
			RepositoryName:  "app",
			Vulnerabilities: []entities.VulnerabilityRecord{builder.BuildRecord()},
		}

		// when
		same := findings.Contains(entitybuilders.NewVulnerabilityRecordBuilder().BuildRecord())
		other := findings.Contains(builder.WithFixedInVersion("3.0.0").BuildRecord())

		// then
		assert.True(t, same)
		assert.False(t, other)
	})

	t.Run("should treat missing findings as empty", func(t *testing.T) {
		t.Parallel()

		// given
		var findings *entities.RepositoryFindings

		// when
		found := findings.Contains(entitybuilders.NewVulnerabilityRecordBuilder().BuildRecord())

		// then
		assert.False(t, found)
	})
}

func TestAppendFailed(t *testing.T) {
	t.Parallel()

	t.Run("should wrap the cause in a store access error", func(t *testing.T) {
		t.Parallel()

		// given
		cause := errors.New("throttled")

		// when
		result := entities.AppendFailed(cause)

		// then
		assert.False(t, result.Ok())
		var storeErr *entities.StoreAccessError
		require.ErrorAs(t, result.Err, &storeErr)
		assert.ErrorIs(t, result.Err, cause)
	})

	t.Run("should not wrap a store access error twice", func(t *testing.T) {
		t.Parallel()

		// given
		cause := &entities.StoreAccessError{Err: errors.New("throttled")}

		// when
		result := entities.AppendFailed(cause)

		// then
		assert.Same(t, cause, result.Err)
	})
}

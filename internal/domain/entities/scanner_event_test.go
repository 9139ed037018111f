//go:build unit

package entities_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/test/domain/entitybuilders"
)

func TestNormalizeFinding(t *testing.T) {
	t.Parallel()

	t.Run("should extract repository name and first vulnerable package", func(t *testing.T) {
		t.Parallel()

		// given
		event := entitybuilders.NewScannerEventBuilder().BuildEvent()

		// when
		finding, err := entities.NormalizeFinding(event)

		// then
		require.NoError(t, err)
		assert.Equal(t, "my-amazing-application", finding.RepositoryName)
		assert.Equal(t, entities.VulnerabilityRecord{
			LibraryName:    "Flask",
			CurrentVersion: "1.1.2",
			FixedInVersion: "2.3.2",
			CVEID:          "CVE-2023-30861",
		}, finding.Record)
	})

	t.Run("should use the whole ARN when the repository token is absent", func(t *testing.T) {
		t.Parallel()

		// given
		event := entitybuilders.NewScannerEventBuilder().
			WithResources("plain-name/sha256:abc").
			BuildEvent()

		// when
		finding, err := entities.NormalizeFinding(event)

		// then
		require.NoError(t, err)
		assert.Equal(t, "plain-name", finding.RepositoryName)
	})

	t.Run("should only read the first resource", func(t *testing.T) {
		t.Parallel()

		// given
		event := entitybuilders.NewScannerEventBuilder().
			WithResources(
				"arn:aws:ecr:us-west-2:1:repository/first/sha256:1",
				"arn:aws:ecr:us-west-2:1:repository/second/sha256:2",
			).
			BuildEvent()

		// when
		finding, err := entities.NormalizeFinding(event)

		// then
		require.NoError(t, err)
		assert.Equal(t, "first", finding.RepositoryName)
	})

	t.Run("should leave the record empty when there are no vulnerable packages", func(t *testing.T) {
		t.Parallel()

		// given
		event := entitybuilders.NewScannerEventBuilder().WithoutPackages().BuildEvent()

		// when
		finding, err := entities.NormalizeFinding(event)

		// then
		require.NoError(t, err)
		assert.Equal(t, "my-amazing-application", finding.RepositoryName)
		assert.True(t, finding.Record.IsEmpty(), "the CVE is only read alongside a package")
	})

	t.Run("should default every field when resources and detail are missing", func(t *testing.T) {
		t.Parallel()

		// given
		event := map[string]any{}

		// when
		finding, err := entities.NormalizeFinding(event)

		// then
		require.NoError(t, err)
		assert.Empty(t, finding.RepositoryName)
		assert.True(t, finding.Record.IsEmpty())
	})

	t.Run("should leave missing package fields empty", func(t *testing.T) {
		t.Parallel()

		// given
		event := entitybuilders.NewScannerEventBuilder().BuildEvent()
		details := event["detail"].(map[string]any)["packageVulnerabilityDetails"].(map[string]any)
		details["vulnerablePackages"] = []any{map[string]any{"name": "urllib3"}}

		// when
		finding, err := entities.NormalizeFinding(event)

		// then
		require.NoError(t, err)
		assert.Equal(t, "urllib3", finding.Record.LibraryName)
		assert.Empty(t, finding.Record.CurrentVersion)
		assert.Empty(t, finding.Record.FixedInVersion)
		assert.Equal(t, "CVE-2023-30861", finding.Record.CVEID)
	})

	t.Run("should reject an event that is not an object", func(t *testing.T) {
		t.Parallel()

		// given
		raw := []any{"not", "an", "event"}

		// when
		_, err := entities.NormalizeFinding(raw)

		// then
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrMalformedEvent))
		var malformed *entities.MalformedEventError
		assert.True(t, errors.As(err, &malformed))
	})
}

func TestParseScannerEvent(t *testing.T) {
	t.Parallel()

	t.Run("should decode a JSON object", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(`{"resources":["arn:aws:ecr:us-west-2:1:repository/app/sha256:1"]}`)

		// when
		raw, err := entities.ParseScannerEvent(data)

		// then
		require.NoError(t, err)
		finding, normalizeErr := entities.NormalizeFinding(raw)
		require.NoError(t, normalizeErr)
		assert.Equal(t, "app", finding.RepositoryName)
	})

	t.Run("should report invalid JSON as a malformed event", func(t *testing.T) {
		t.Parallel()

		// given
		data := []byte(`{"resources":`)

		// when
		_, err := entities.ParseScannerEvent(data)

		// then
		assert.ErrorIs(t, err, entities.ErrMalformedEvent)
	})
}

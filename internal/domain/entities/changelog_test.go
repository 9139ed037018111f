//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/test/domain/entitybuilders"
)

func TestRemediationChangelogEntry(t *testing.T) {
	t.Parallel()

	t.Run("should list each CVE once in first-seen order", func(t *testing.T) {
		t.Parallel()

		// given
		builder := entitybuilders.NewVulnerabilityRecordBuilder()
		findings := []entities.VulnerabilityRecord{
			builder.WithCVEID("CVE-2").BuildRecord(),
			builder.WithCVEID("CVE-1").BuildRecord(),
			builder.WithCVEID("CVE-2").BuildRecord(),
		}

		// when
		entry := entities.RemediationChangelogEntry(findings)

		// then
		assert.Equal(t,
			"- changed the vulnerable Python dependencies to their fixed versions (CVE-2, CVE-1)",
			entry,
		)
	})

	t.Run("should omit the CVE list when no finding has one", func(t *testing.T) {
		t.Parallel()

		// when
		entry := entities.RemediationChangelogEntry([]entities.VulnerabilityRecord{{LibraryName: "pip"}})

		// then
		assert.Equal(t, "- changed the vulnerable Python dependencies to their fixed versions", entry)
	})
}

func TestAddChangelogEntries(t *testing.T) {
	t.Parallel()

	t.Run("should append to an existing Changed list of the Unreleased release", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# Changelog\n\n## [Unreleased]\n\n### Changed\n\n- existing entry\n\n## [1.0.0] - 2024-01-01\n\n- old\n"

		// when
		updated, ok := entities.AddChangelogEntries(content, []string{"- new entry"})

		// then
		assert.True(t, ok)
		assert.Equal(t,
			"# Changelog\n\n## [Unreleased]\n\n### Changed\n\n- existing entry\n- new entry\n\n## [1.0.0] - 2024-01-01\n\n- old\n",
			updated,
		)
	})

	t.Run("should create the Changed subsection when missing", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# Changelog\n\n## [Unreleased]\n\n## [1.0.0] - 2024-01-01\n"

		// when
		updated, ok := entities.AddChangelogEntries(content, []string{"- new entry"})

		// then
		assert.True(t, ok)
		assert.Equal(t,
			"# Changelog\n\n## [Unreleased]\n\n### Changed\n\n- new entry\n\n## [1.0.0] - 2024-01-01\n",
			updated,
		)
	})

	t.Run("should not touch a changelog without an Unreleased release", func(t *testing.T) {
		t.Parallel()

		// given
		content := "# Changelog\n\n## [1.0.0] - 2024-01-01\n"

		// when
		updated, ok := entities.AddChangelogEntries(content, []string{"- new entry"})

		// then
		assert.False(t, ok)
		assert.Equal(t, content, updated)
	})

	t.Run("should ignore the Changed list of a released version", func(t *testing.T) {
		t.Parallel()

		// given
		content := "## [Unreleased]\n\n## [1.0.0]\n\n### Changed\n\n- old\n"

		// when
		updated, ok := entities.AddChangelogEntries(content, []string{"- new"})

		// then
		assert.True(t, ok)
		assert.Equal(t, "## [Unreleased]\n\n### Changed\n\n- new\n\n## [1.0.0]\n\n### Changed\n\n- old\n", updated)
	})
}

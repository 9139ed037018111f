//go:build unit

package entities_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
	"github.com/rios0rios0/cvefinder/test/domain/entitybuilders"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("should render application, vulnerabilities and manifest", func(t *testing.T) {
		t.Parallel()

		// given
		findings := []entities.VulnerabilityRecord{
			entitybuilders.NewVulnerabilityRecordBuilder().BuildRecord(),
		}

		// when
		prompt := entities.BuildPrompt(findings, "Flask==1.1.2", "app")

		// then
		assert.Equal(t,
			"Application:app\n"+
				"Vulnerabilities:\n"+
				"- Flask 1.1.2 (fixed in 2.3.2): CVE CVE-2023-30861\n"+
				"\nCurrent `requirements.txt`:\n```\nFlask==1.1.2\n```\nSuggestions for improvement:",
			prompt,
		)
	})

	t.Run("should list only the first finding of each library", func(t *testing.T) {
		t.Parallel()

		// given
		builder := entitybuilders.NewVulnerabilityRecordBuilder()
		findings := []entities.VulnerabilityRecord{
			builder.BuildRecord(),
			builder.WithCVEID("CVE-2099-0001").BuildRecord(),
		}

		// when
		prompt := entities.BuildPrompt(findings, "", "app")

		// then
		assert.Equal(t, 1, strings.Count(prompt, "- Flask"))
		assert.NotContains(t, prompt, "CVE-2099-0001")
	})

	t.Run("should skip a library whose name already occurs in the rendered text", func(t *testing.T) {
		t.Parallel()

		// given
		findings := []entities.VulnerabilityRecord{
			entitybuilders.NewVulnerabilityRecordBuilder().WithLibraryName("Jinja2").BuildRecord(),
			entitybuilders.NewVulnerabilityRecordBuilder().WithLibraryName("Jinja").WithCVEID("CVE-1").BuildRecord(),
		}

		// when
		prompt := entities.BuildPrompt(findings, "", "app")

		// then
		assert.NotContains(t, prompt, "CVE-1")
	})

	t.Run("should skip a library named after the application", func(t *testing.T) {
		t.Parallel()

		// given
		findings := []entities.VulnerabilityRecord{
			entitybuilders.NewVulnerabilityRecordBuilder().WithLibraryName("flask-app").BuildRecord(),
		}

		// when
		prompt := entities.BuildPrompt(findings, "", "flask-app")

		// then
		assert.NotContains(t, prompt, "- flask-app")
	})

	t.Run("should render an empty vulnerability list", func(t *testing.T) {
		t.Parallel()

		// when
		prompt := entities.BuildPrompt(nil, "requests==2.24.0", "app")

		// then
		assert.True(t, strings.HasPrefix(prompt, "Application:app\nVulnerabilities:\n\nCurrent"))
	})

	t.Run("should be deterministic", func(t *testing.T) {
		t.Parallel()

		// given
		findings := []entities.VulnerabilityRecord{
			entitybuilders.NewVulnerabilityRecordBuilder().BuildRecord(),
			entitybuilders.NewVulnerabilityRecordBuilder().WithLibraryName("urllib3").BuildRecord(),
		}

		// when
		first := entities.FullPrompt(findings, "Flask==1.1.2", "app")
		second := entities.FullPrompt(findings, "Flask==1.1.2", "app")

		// then
		assert.Equal(t, first, second)
	})
}

func TestFullPrompt(t *testing.T) {
	t.Parallel()

	t.Run("should prefix the prompt with the in-context example", func(t *testing.T) {
		t.Parallel()

		// when
		prompt := entities.FullPrompt(nil, "", "app")

		// then
		assert.True(t, strings.HasPrefix(prompt, entities.InContextExample))
		assert.True(t, strings.HasSuffix(prompt, entities.BuildPrompt(nil, "", "app")))
	})
}

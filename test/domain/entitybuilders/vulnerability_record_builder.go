//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/cvefinder/internal/domain/entities"
)

// VulnerabilityRecordBuilder helps create test vulnerability records with a fluent interface.
type VulnerabilityRecordBuilder struct {
	*testkit.BaseBuilder
	libraryName    string
	currentVersion string
	fixedInVersion string
	cveID          string
}

// NewVulnerabilityRecordBuilder creates a new record builder with sensible defaults.
func NewVulnerabilityRecordBuilder() *VulnerabilityRecordBuilder {
	return &VulnerabilityRecordBuilder{
		BaseBuilder:    testkit.NewBaseBuilder(),
		libraryName:    "Flask",
		currentVersion: "1.1.2",
		fixedInVersion: "2.3.2",
		cveID:          "CVE-2023-30861",
	}
}

// WithLibraryName sets the vulnerable package name.
func (b *VulnerabilityRecordBuilder) WithLibraryName(name string) *VulnerabilityRecordBuilder {
	b.libraryName = name
	return b
}

// WithCurrentVersion sets the installed version.
func (b *VulnerabilityRecordBuilder) WithCurrentVersion(version string) *VulnerabilityRecordBuilder {
	b.currentVersion = version
	return b
}

// WithFixedInVersion sets the first fixed version.
func (b *VulnerabilityRecordBuilder) WithFixedInVersion(version string) *VulnerabilityRecordBuilder {
	b.fixedInVersion = version
	return b
}

// WithCVEID sets the CVE identifier.
func (b *VulnerabilityRecordBuilder) WithCVEID(cveID string) *VulnerabilityRecordBuilder {
	b.cveID = cveID
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *VulnerabilityRecordBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the record with a concrete return type.
func (b *VulnerabilityRecordBuilder) BuildRecord() entities.VulnerabilityRecord {
	return entities.VulnerabilityRecord{
		LibraryName:    b.libraryName,
		CurrentVersion: b.currentVersion,
		FixedInVersion: b.fixedInVersion,
		CVEID:          b.cveID,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *VulnerabilityRecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.libraryName = "Flask"
	b.currentVersion = "1.1.2"
	b.fixedInVersion = "2.3.2"
	b.cveID = "CVE-2023-30861"
	return b
}

// Clone creates a deep copy of the VulnerabilityRecordBuilder.
func (b *VulnerabilityRecordBuilder) Clone() testkit.Builder {
	return &VulnerabilityRecordBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		libraryName:    b.libraryName,
		currentVersion: b.currentVersion,
		fixedInVersion: b.fixedInVersion,
		cveID:          b.cveID,
	}
}

//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

const defaultResourceARN = "arn:aws:ecr:us-west-2:123456789012:repository/my-amazing-application/sha256:abc123"

// ScannerEventBuilder helps create decoded Inspector finding events.
type ScannerEventBuilder struct {
	*testkit.BaseBuilder
	resources       []any
	packages        []any
	vulnerabilityID string
	withDetail      bool
}

// NewScannerEventBuilder creates an event for one vulnerable Flask package.
func NewScannerEventBuilder() *ScannerEventBuilder {
	b := &ScannerEventBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.Reset()
	return b
}

// WithResources replaces the resource ARNs.
func (b *ScannerEventBuilder) WithResources(arns ...string) *ScannerEventBuilder {
	b.resources = make([]any, 0, len(arns))
	for _, arn := range arns {
		b.resources = append(b.resources, arn)
	}
	return b
}

// WithPackage replaces the vulnerable packages with a single one.
func (b *ScannerEventBuilder) WithPackage(name, version, fixedIn string) *ScannerEventBuilder {
	b.packages = []any{map[string]any{"name": name, "version": version, "fixedInVersion": fixedIn}}
	return b
}

// WithoutPackages empties the vulnerable package list.
func (b *ScannerEventBuilder) WithoutPackages() *ScannerEventBuilder {
	b.packages = []any{}
	return b
}

// WithVulnerabilityID sets the CVE identifier.
func (b *ScannerEventBuilder) WithVulnerabilityID(id string) *ScannerEventBuilder {
	b.vulnerabilityID = id
	return b
}

// WithoutDetail drops the detail object entirely.
func (b *ScannerEventBuilder) WithoutDetail() *ScannerEventBuilder {
	b.withDetail = false
	return b
}

// Build creates the event (satisfies testkit.Builder interface).
func (b *ScannerEventBuilder) Build() interface{} {
	return b.BuildEvent()
}

// BuildEvent creates the event as decoded JSON.
func (b *ScannerEventBuilder) BuildEvent() map[string]any {
	event := map[string]any{"resources": b.resources}
	if b.withDetail {
		event["detail"] = map[string]any{
			"packageVulnerabilityDetails": map[string]any{
				"vulnerablePackages": b.packages,
				"vulnerabilityId":    b.vulnerabilityID,
			},
		}
	}
	return event
}

// Reset clears the builder state, allowing it to be reused.
func (b *ScannerEventBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.resources = []any{defaultResourceARN}
	b.packages = []any{map[string]any{"name": "Flask", "version": "1.1.2", "fixedInVersion": "2.3.2"}}
	b.vulnerabilityID = "CVE-2023-30861"
	b.withDetail = true
	return b
}

// Clone creates a copy of the ScannerEventBuilder.
func (b *ScannerEventBuilder) Clone() testkit.Builder {
	return &ScannerEventBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		resources:       append([]any(nil), b.resources...),
		packages:        append([]any(nil), b.packages...),
		vulnerabilityID: b.vulnerabilityID,
		withDetail:      b.withDetail,
	}
}

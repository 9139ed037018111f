package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

// repositoryARNToken precedes the repository path in an ECR image ARN, e.g.
// arn:aws:ecr:us-west-2:123456789012:repository/my-app/sha256:abc.
const repositoryARNToken = ":repository/"

// NormalizedFinding is a scanner event reduced to its target repository and record.
type NormalizedFinding struct {
	RepositoryName string
	Record         VulnerabilityRecord
}

// ParseScannerEvent decodes a raw Inspector event. Shape checks are left to NormalizeFinding.
func ParseScannerEvent(data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	return raw, nil
}

// NormalizeFinding extracts the repository name and the vulnerability record out of
// an Inspector finding event. Missing nested fields are left empty; the only failure
// is an event that is not an object at all.
func NormalizeFinding(raw any) (NormalizedFinding, error) {
	event, ok := raw.(map[string]any)
	if !ok {
		return NormalizedFinding{}, &MalformedEventError{Got: fmt.Sprintf("%T", raw)}
	}

	finding := NormalizedFinding{
		RepositoryName: repositoryNameFromResources(event["resources"]),
	}

	details := objectAt(event, "detail", "packageVulnerabilityDetails")
	packages, _ := details["vulnerablePackages"].([]any)
	if len(packages) == 0 {
		return finding, nil
	}

	vulnerable, _ := packages[0].(map[string]any)
	finding.Record = VulnerabilityRecord{
		LibraryName:    stringAt(vulnerable, "name"),
		CurrentVersion: stringAt(vulnerable, "version"),
		FixedInVersion: stringAt(vulnerable, "fixedInVersion"),
		CVEID:          stringAt(details, "vulnerabilityId"),
	}
	return finding, nil
}

func repositoryNameFromResources(value any) string {
	resources, _ := value.([]any)
	if len(resources) == 0 {
		return ""
	}
	arn, _ := resources[0].(string)

	if idx := strings.LastIndex(arn, repositoryARNToken); idx >= 0 {
		arn = arn[idx+len(repositoryARNToken):]
	}
	name, _, _ := strings.Cut(arn, "/")
	return name
}

func objectAt(root map[string]any, path ...string) map[string]any {
	current := root
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}

func stringAt(object map[string]any, key string) string {
	value, _ := object[key].(string)
	return value
}

package entities

import "encoding/json"

// VulnerabilityRecord is a single normalized finding for one package version.
// Two records are the same finding when all four fields are equal, so the struct
// must stay comparable. An empty field means the scanner event did not carry it.
type VulnerabilityRecord struct {
	LibraryName    string `dynamodbav:"library_name,nullempty"     json:"library_name"`
	CurrentVersion string `dynamodbav:"current_version,nullempty"  json:"current_version"`
	FixedInVersion string `dynamodbav:"fixed_in_version,nullempty" json:"fixed_in_version"`
	CVEID          string `dynamodbav:"cve_id,nullempty"           json:"cve_id"`
}

// IsEmpty reports whether the record carries no package information at all.
func (it VulnerabilityRecord) IsEmpty() bool {
	return it == VulnerabilityRecord{}
}

// MarshalJSON writes absent fields as null instead of "".
func (it VulnerabilityRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LibraryName    *string `json:"library_name"`
		CurrentVersion *string `json:"current_version"`
		FixedInVersion *string `json:"fixed_in_version"`
		CVEID          *string `json:"cve_id"`
	}{
		LibraryName:    nullable(it.LibraryName),
		CurrentVersion: nullable(it.CurrentVersion),
		FixedInVersion: nullable(it.FixedInVersion),
		CVEID:          nullable(it.CVEID),
	})
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

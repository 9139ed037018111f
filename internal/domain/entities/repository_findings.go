package entities

import "errors"

// RepositoryFindings is the aggregated, deduplicated list of findings of one
// ECR repository. Records are only ever appended, in arrival order.
type RepositoryFindings struct {
	RepositoryName  string                `dynamodbav:"ecr_repo_name"   json:"ecr_repo_name"`
	Vulnerabilities []VulnerabilityRecord `dynamodbav:"vulnerabilities" json:"vulnerabilities"`
}

// Contains reports whether a structurally identical record is already stored.
func (it *RepositoryFindings) Contains(record VulnerabilityRecord) bool {
	if it == nil {
		return false
	}
	for _, existing := range it.Vulnerabilities {
		if existing == record {
			return true
		}
	}
	return false
}

// AppendStatus is the outcome of a single append to the aggregation store.
type AppendStatus string

const (
	AppendStatusAppended  AppendStatus = "appended"
	AppendStatusDuplicate AppendStatus = "duplicate"
	AppendStatusFailed    AppendStatus = "failed"
)

// AppendResult reports what happened to an append. Store failures never surface
// as a returned error: Err only carries the diagnostic for whoever wants it.
type AppendResult struct {
	Status AppendStatus
	Err    error
}

// Ok reports whether the store is now known to hold the record.
func (it AppendResult) Ok() bool {
	return it.Status != AppendStatusFailed
}

// Appended builds the result of a successful append.
func Appended() AppendResult { return AppendResult{Status: AppendStatusAppended} }

// Duplicate builds the result of an append skipped because the record exists.
func Duplicate() AppendResult { return AppendResult{Status: AppendStatusDuplicate} }

// AppendFailed builds the result of an append the store could not perform.
func AppendFailed(err error) AppendResult {
	var storeErr *StoreAccessError
	if !errors.As(err, &storeErr) {
		err = &StoreAccessError{Err: err}
	}
	return AppendResult{Status: AppendStatusFailed, Err: err}
}

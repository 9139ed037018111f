package entities

// IngestResult is the webhook-style answer of the ingestion boundary. StatusCode is
// always 200: ingestion problems are logged, never reported to the caller.
type IngestResult struct {
	StatusCode int        `json:"statusCode"`
	Body       IngestBody `json:"body"`
}

// IngestBody is the payload of IngestResult.
type IngestBody struct {
	Message              string              `json:"message"`
	VulnerabilityDetails VulnerabilityRecord `json:"vulnerability_details"`
}

// RemediationResult summarizes one remediation run of a repository.
type RemediationResult struct {
	Repository string
	Branch     string

	// Attempts counts model invocations, BranchAttempts branch creations.
	Attempts       int
	BranchAttempts int

	// Committed is true once the patched manifest was committed and pushed.
	Committed  bool
	Completion string

	PullRequest *PullRequest
	ReviewErr   error
}

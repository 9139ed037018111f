package entities

// ManifestCommitMessage is the message of every remediation commit.
const ManifestCommitMessage = "chore(deps): updated requirements.txt with secure versions"

// ManifestChange is what the version-control driver writes and commits.
type ManifestChange struct {
	Path    string
	Text    string
	Message string
	// Extra holds additional files (path -> content) committed with the manifest.
	Extra map[string]string
}

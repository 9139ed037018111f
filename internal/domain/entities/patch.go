package entities

import (
	"regexp"
	"strings"
)

// manifestPatchPattern matches the first fenced block after the updated manifest marker.
var manifestPatchPattern = regexp.MustCompile("Updated `requirements\\.txt`:\\s*```\\s*([\\s\\S]*?)\\s*```")

// ExtractManifestPatch returns the trimmed body of the updated manifest block of a
// completion. The text is trusted as-is; ok is false when no non-empty block exists.
func ExtractManifestPatch(completion string) (string, bool) {
	match := manifestPatchPattern.FindStringSubmatch(completion)
	if match == nil {
		return "", false
	}

	patch := strings.TrimSpace(match[1])
	return patch, patch != ""
}

package entities

import (
	"fmt"
	"strings"
)

const (
	ChangelogFile = "CHANGELOG.md"

	unreleasedHeading = "## [Unreleased]"
	changedHeading    = "### Changed"
	releasePrefix     = "## ["
)

// RemediationChangelogEntry describes the patch in Keep-a-Changelog style, listing
// each distinct CVE once in first-seen order.
func RemediationChangelogEntry(findings []VulnerabilityRecord) string {
	seen := make(map[string]bool, len(findings))
	cves := make([]string, 0, len(findings))
	for _, record := range findings {
		if record.CVEID == "" || seen[record.CVEID] {
			continue
		}
		seen[record.CVEID] = true
		cves = append(cves, record.CVEID)
	}

	if len(cves) == 0 {
		return "- changed the vulnerable Python dependencies to their fixed versions"
	}
	return fmt.Sprintf(
		"- changed the vulnerable Python dependencies to their fixed versions (%s)",
		strings.Join(cves, ", "),
	)
}

// AddChangelogEntries places entries at the end of the "### Changed" list of the
// "## [Unreleased]" release, creating the subsection when needed. It reports false
// and leaves content untouched when there is no Unreleased release.
func AddChangelogEntries(content string, entries []string) (string, bool) {
	if len(entries) == 0 {
		return content, false
	}

	lines := strings.Split(content, "\n")
	start, end, changed := -1, len(lines), -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case start < 0:
			if trimmed == unreleasedHeading {
				start = i
			}
		case strings.HasPrefix(trimmed, releasePrefix):
			end = i
		case changed < 0 && trimmed == changedHeading:
			changed = i
		}
		if end != len(lines) {
			break
		}
	}
	if start < 0 {
		return content, false
	}

	if changed < 0 {
		block := append([]string{"", changedHeading, ""}, entries...)
		return strings.Join(splice(lines, start+1, block), "\n"), true
	}

	// bullets may be separated by blank lines; stop at the next heading or prose
	at := changed + 1
	for i := changed + 1; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "- ") {
			break
		}
		at = i + 1
	}
	return strings.Join(splice(lines, at, entries), "\n"), true
}

func splice(lines []string, at int, extra []string) []string {
	out := make([]string, 0, len(lines)+len(extra))
	out = append(out, lines[:at]...)
	out = append(out, extra...)
	return append(out, lines[at:]...)
}

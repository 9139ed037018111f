package entities

import (
	"fmt"
	"strings"
)

// InContextExample is a worked vulnerabilities-to-manifest example placed ahead of
// every prompt so the model answers with an "Updated `requirements.txt`:" block.
const InContextExample = "\nApplication: in-context-learning-example\n" +
	"Vulnerabilities:\n" +
	"- Werkzeug 1.0.1 (fixed in 2.2.3): CVE CVE-2023-25577\n" +
	"- urllib3 1.25.11 (fixed in 2.0.7): CVE CVE-2023-45803\n" +
	"- Jinja2 2.11.2 (fixed in 2.11.3): CVE CVE-2020-28493\n" +
	"- pip 23.0.1 (fixed in 23.3): CVE CVE-2023-5752\n" +
	"- requests 2.24.0 (fixed in 2.31.0): CVE CVE-2023-32681\n" +
	"- setuptools 57.5.0 (fixed in 65.5.1): CVE CVE-2022-40897\n" +
	"- Flask 1.1.2 (fixed in 2.3.2): CVE CVE-2023-30861\n" +
	"\n" +
	"Current `requirements.txt`:\n" +
	"```\n" +
	"Flask==1.1.2\n" +
	"Jinja2==2.11.2\n" +
	"Werkzeug==1.0.1\n" +
	"requests==2.24.0\n" +
	"```\n" +
	"\n" +
	"Suggestions for improvement:\n" +
	"To enhance the security and maintain the integrity of your Python application, " +
	"it's critical to address the following package vulnerabilities by updating to the " +
	"recommended versions. Each update mitigates specific security risks associated with " +
	"these packages, ensuring your application is safeguarded against potential exploits:\n" +
	"\n" +
	"- **Flask 1.1.2**: Update to Flask==2.3.2 to resolve CVE-2023-30861, which addresses " +
	"a security flaw that could allow unauthorized access or data leakage.\n" +
	"- **Jinja2 2.11.2**: Upgrade to Jinja2==3.1.3 to fix vulnerabilities CVE-2020-28493 " +
	"and CVE-2024-22195. These updates patch security issues that could lead to remote " +
	"code execution or information disclosure.\n" +
	"- **Werkzeug 1.0.1**: Upgrade to Werkzeug==3.0.1 to mitigate CVE-2023-25577, " +
	"CVE-2023-23934, and CVE-2023-46136. These updates close security gaps that could be " +
	"exploited to perform denial of service attacks or unauthorized actions.\n" +
	"- **requests 2.24.0**: Update to requests==2.31.0 to address CVE-2023-32681, fixing " +
	"a vulnerability that could allow attackers to disclose sensitive information.\n" +
	"- **urllib3 1.25.11**: Upgrade to urllib3==2.0.7 to resolve CVE-2023-45803, " +
	"CVE-2023-43804, and CVE-2021-33503, mitigating issues that could lead to information " +
	"leakage or denial of service.\n" +
	"- **pip 23.0.1**: Update to pip==23.3 to fix CVE-2023-5752, addressing a " +
	"vulnerability that could impact package integrity verification.\n" +
	"- **setuptools 57.5.0**: Upgrade to setuptools==65.5.1 to correct CVE-2022-40897, " +
	"which resolves a flaw that could allow unauthorized code execution during package " +
	"installation.\n" +
	"\n" +
	"Action Steps:\n" +
	"1. Review your `requirements.txt` and update the versions of the aforementioned " +
	"packages to their secure versions as listed.\n" +
	"2. After updating, run thorough tests to ensure that the upgrades do not disrupt " +
	"your application functionalities.\n" +
	"3. Regularly monitor and review security advisories for your application's " +
	"dependencies to proactively address new vulnerabilities as they are discovered.\n" +
	"\n" +
	"Updated `requirements.txt`:\n" +
	"```\n" +
	"Flask==2.3.2\n" +
	"Jinja2==3.1.3\n" +
	"Werkzeug==3.0.1\n" +
	"requests==2.31.0\n" +
	"urllib3==2.0.7\n" +
	"pip==23.3\n" +
	"setuptools==65.5.1\n" +
	"```\n" +
	"---\n"

// BuildPrompt renders the findings of one application followed by its current
// manifest. A record is skipped when its library name already occurs anywhere in
// the text rendered so far, so only the first finding per library is listed.
func BuildPrompt(findings []VulnerabilityRecord, manifest, appName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Application:%s\nVulnerabilities:\n", appName)
	for _, record := range findings {
		if strings.Contains(sb.String(), record.LibraryName) {
			continue
		}
		fmt.Fprintf(&sb, "- %s %s (fixed in %s): CVE %s\n",
			record.LibraryName, record.CurrentVersion, record.FixedInVersion, record.CVEID)
	}

	fmt.Fprintf(&sb, "\nCurrent `requirements.txt`:\n```\n%s\n```\nSuggestions for improvement:", manifest)
	return sb.String()
}

// FullPrompt is the model input: the in-context example followed by BuildPrompt.
func FullPrompt(findings []VulnerabilityRecord, manifest, appName string) string {
	return InContextExample + BuildPrompt(findings, manifest, appName)
}

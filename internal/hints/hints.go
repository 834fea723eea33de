// Package hints turns common CLI failures into actionable one-line hints.
// Hints are formatted as "\n  hint: <text>" so they can be appended to an
// error message.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdpress/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for Chrome launch failures.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}

	return formatHints(hints)
}

// ForTimeout suggests a longer render timeout.
func ForTimeout() string {
	return format("for large documents, raise --timeout")
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the output directory is writable")
}

// ForUnsupportedFont lists the families the caller may choose from.
func ForUnsupportedFont(families []string) string {
	if len(families) == 0 {
		return ""
	}
	return format("available: " + strings.Join(families, ", ") + " (see mdpress fonts)")
}

// ForAssetPath explains the expected asset directory layout.
func ForAssetPath() string {
	return format("the asset directory must exist and may hold fonts/ and styles/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

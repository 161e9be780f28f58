package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the current release. Bump the minor part whenever the
// database schema changes.
var Version = "0.1.0"

func GetCurrentVersion() string {
	return Version
}

// GetSchemaVersion returns the version that identifies the database
// schema, which only moves with minor releases.
func GetSchemaVersion(version string) string {
	return GetMinorVersion(version) + ".0"
}

// GetMinorVersion returns the major.minor part of a version string.
func GetMinorVersion(version string) string {
	versionList := strings.Split(version, ".")
	if len(versionList) < 2 {
		return "0.0"
	}
	return strings.Join(versionList[:2], ".")
}

func IsVersionGreaterOrEqualThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) >= 0
}

func IsVersionGreaterThan(version, target string) bool {
	return semver.Compare(fmt.Sprintf("v%s", version), fmt.Sprintf("v%s", target)) > 0
}

// SortVersion sorts a list of versions in ascending order.
type SortVersion []string

func (s SortVersion) Len() int {
	return len(s)
}

func (s SortVersion) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func (s SortVersion) Less(i, j int) bool {
	return semver.Compare(fmt.Sprintf("v%s", s[i]), fmt.Sprintf("v%s", s[j])) < 0
}

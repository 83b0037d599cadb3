package common

import (
	"path"
	"strings"
)

// UnknownStr is the String() value for unrecognized enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// SplitQualified splits "path/to/pkg.Name" into its package path and name.
// A name without a dot has an empty package path.
func SplitQualified(qualified string) (pkgPath, name string) {
	i := strings.LastIndex(qualified, ".")
	if i < 0 || strings.LastIndex(qualified, "/") > i {
		return "", qualified
	}

	return qualified[:i], qualified[i+1:]
}

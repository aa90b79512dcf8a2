// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package models

// BuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are injected by linker flags during CI/CD and shown by the
// version endpoint, `arbormailctl version`, and startup logs.
type BuildInfo struct {
	// Version is the semantic version string of the build.
	Version string `json:"version"`

	// Date is the build timestamp string.
	Date string `json:"date"`

	// Commit is the source-control commit hash used for the build.
	Commit string `json:"commit"`
}

// NewBuildInfo constructs [BuildInfo], substituting "N/A" for every field
// that was not set by the linker.
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

// String renders the build info in the single-line form used by startup
// logs and the CLI version command.
func (b BuildInfo) String() string {
	return "version " + b.Version + ", built " + b.Date + " (" + b.Commit + ")"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'taxkaki/internal/core/version.version=v0.1.0'
	// -X 'taxkaki/internal/core/version.commit=abcd' -X 'taxkaki/internal/core/version.date=2026-01-02'"
	return BuildInfo{
		Service: "taxkaki-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// Short is "<version>+<commit>" for client info strings
func Short() string {
	if commit == "" || commit == "none" {
		return version
	}
	return version + "+" + commit
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

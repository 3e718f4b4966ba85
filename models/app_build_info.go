package models

import "fmt"

const notAvailable = "N/A"

// AppBuildInfo is the build metadata injected into a binary by linker flags.
// Empty values read as "N/A".
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the linker-provided values.
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orNotAvailable(version),
		date:    orNotAvailable(date),
		commit:  orNotAvailable(commit),
	}
}

func (a AppBuildInfo) Version() string {
	return orNotAvailable(a.version)
}

func (a AppBuildInfo) Date() string {
	return orNotAvailable(a.date)
}

func (a AppBuildInfo) Commit() string {
	return orNotAvailable(a.commit)
}

// Known reports whether a version was injected at build time.
func (a AppBuildInfo) Known() bool {
	return a.Version() != notAvailable
}

// String implements [fmt.Stringer].
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s", a.Version(), a.Date(), a.Commit())
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

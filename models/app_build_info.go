package models

import "fmt"

// AppBuildInfo carries the values injected with -ldflags at build time.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// String renders "version (commit)" for logs, "dev" for a local build.
func (a AppBuildInfo) String() string {
	if a.buildVersion == "" {
		return "dev"
	}
	if a.buildCommit == "" {
		return a.buildVersion
	}
	return fmt.Sprintf("%s (%s)", a.buildVersion, a.buildCommit)
}

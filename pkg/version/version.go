package version

import (
	"runtime"
	"strconv"
	"time"

	"github.com/Masterminds/semver"
)

// These variables are set with -ldflags at build time, e.g.
//
//	-X github.com/genie-oss/genie/pkg/version.GITVERSION=v1.2.0
var (
	GITVERSION = "v0.0.0-dev"
	GITCOMMIT  = ""
	BUILDDATE  = ""
)

const buildDateLayout = "2006-01-02T15:04:05Z"

type BuildVersionInfo struct {
	Major      string    `json:"Major,omitempty"`
	Minor      string    `json:"Minor,omitempty"`
	GitVersion string    `json:"GitVersion"`
	GitCommit  string    `json:"GitCommit"`
	BuildDate  time.Time `json:"BuildDate"`
	GOOS       string    `json:"GOOS"`
	GOARCH     string    `json:"GOARCH"`
}

// Get returns the version the binary was built from. Values that do not
// parse are reported as they are, without major and minor.
func Get() BuildVersionInfo {
	info := BuildVersionInfo{
		GitVersion: GITVERSION,
		GitCommit:  GITCOMMIT,
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}
	if v, err := semver.NewVersion(GITVERSION); err == nil {
		info.Major = strconv.FormatInt(v.Major(), 10) //nolint:gomnd
		info.Minor = strconv.FormatInt(v.Minor(), 10) //nolint:gomnd
	}
	if buildDate, err := time.Parse(buildDateLayout, BUILDDATE); err == nil {
		info.BuildDate = buildDate
	}
	return info
}

// Package versioninfo exposes build metadata stamped in via ldflags.
package versioninfo

var (
	Version   = "dev"
	BuildDate = "unknown"
)

type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
}

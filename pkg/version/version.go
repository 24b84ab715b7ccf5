// Package version exposes the build version of the fleetfocus binary.
package version

// Version is the build version, overridden at link time:
//
//	go build -ldflags "-X github.com/fleetfocus/fleetfocus/pkg/version.Version=v1.2.3"
//
//nolint:gochecknoglobals // set via ldflags
var Version = "dev"

// GetVersion returns the build version string.
func GetVersion() string {
	return Version
}

// Package version provides the cruxlines tool version.
package version

// Version is the cruxlines tool version.
// Can be overridden at build time with:
//
//	go build -ldflags "-X github.com/kantord/cruxlines/pkg/version.Version=1.2.3"
var Version = "dev"

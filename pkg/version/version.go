// Package version exposes the build version of the ecocoach binary.
package version

// version is set at build time via -ldflags.
var version = "1.0.0" //nolint:gochecknoglobals // Overridden by the linker

// GetVersion returns the build version string.
func GetVersion() string {
	return version
}

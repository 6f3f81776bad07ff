package build

import "fmt"

// Semantic version fields for this build, following dcrlnd's
// build.Version()-style embedding convention.
const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0

	// appPreRelease is appended to the semver string when non-empty,
	// marking this as a pre-release build.
	appPreRelease = "alpha"
)

// Version returns the application version as a properly formed string
// per the semantic versioning 2.0.0 spec (https://semver.org/).
func Version() string {
	version := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if appPreRelease != "" {
		version = fmt.Sprintf("%s-%s", version, appPreRelease)
	}
	return version
}

package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// CheckVersionCompatibility checks whether a document written for requiredVersion
// (a batch config, a guest module) can be served by libraryVersion.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major and minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
//
// Errors carry ErrCodeInvalidVersion.
func CheckVersionCompatibility(libraryVersion, requiredVersion string) error {
	libraryVersion = strings.TrimPrefix(libraryVersion, "v")
	requiredVersion = strings.TrimPrefix(requiredVersion, "v")

	if libraryVersion == "main" || requiredVersion == "main" {
		return nil
	}

	library, err := semver.NewVersion(libraryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid library version '%s'", libraryVersion)
	}

	required, err := semver.NewVersion(requiredVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid required version '%s'", requiredVersion)
	}

	if library.Major() != required.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "major version mismatch: library is %d.x.x but %d.x.x is required",
			library.Major(), required.Major())
	}

	if library.Minor() != required.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "minor version mismatch: library is %d.%d.x but %d.%d.x is required",
			library.Major(), library.Minor(), required.Major(), required.Minor())
	}

	return nil
}

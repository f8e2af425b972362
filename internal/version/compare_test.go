package version

import (
	"testing"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckVersionCompatibility(t *testing.T) {
	tests := []struct {
		name            string
		libraryVersion  string
		requiredVersion string
		expectError     bool
		errorContains   string
	}{
		{
			name:            "exact match",
			libraryVersion:  "1.2.0",
			requiredVersion: "1.2.0",
		},
		{
			name:            "library patch higher",
			libraryVersion:  "1.2.1",
			requiredVersion: "1.2.0",
		},
		{
			name:            "required patch higher",
			libraryVersion:  "1.2.0",
			requiredVersion: "1.2.5",
		},
		{
			name:            "library minor higher",
			libraryVersion:  "1.3.0",
			requiredVersion: "1.2.0",
			expectError:     true,
			errorContains:   "minor version mismatch",
		},
		{
			name:            "library minor lower",
			libraryVersion:  "1.1.0",
			requiredVersion: "1.2.0",
			expectError:     true,
			errorContains:   "minor version mismatch",
		},
		{
			name:            "major version differs",
			libraryVersion:  "2.0.0",
			requiredVersion: "1.2.0",
			expectError:     true,
			errorContains:   "major version mismatch",
		},
		{
			name:            "library is main",
			libraryVersion:  "main",
			requiredVersion: "1.3.0",
		},
		{
			name:            "required is main",
			libraryVersion:  "1.2.0",
			requiredVersion: "main",
		},
		{
			name:            "v prefix on both",
			libraryVersion:  "v1.2.0",
			requiredVersion: "v1.2.3",
		},
		{
			name:            "prerelease version",
			libraryVersion:  "1.2.0-alpha",
			requiredVersion: "1.2.0",
		},
		{
			name:            "invalid library version",
			libraryVersion:  "not-a-version",
			requiredVersion: "1.2.0",
			expectError:     true,
			errorContains:   "invalid library version",
		},
		{
			name:            "empty required version",
			libraryVersion:  "1.2.0",
			requiredVersion: "",
			expectError:     true,
			errorContains:   "invalid required version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersionCompatibility(tt.libraryVersion, tt.requiredVersion)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidVersion))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.Equal(t, Version, v)
}

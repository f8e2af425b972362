// Package swiftindicators is the gomobile facade of the indicator library.
package swiftindicators

import (
	"github.com/rxtech-lab/argo-indicators/internal/config"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
)

// GetIndicatorNames lists every supported indicator.
func GetIndicatorNames() StringCollection {
	names := NewStringArray()
	for _, t := range types.AllIndicatorTypes {
		names.Add(string(t))
	}

	return names
}

// GetConfigSchema returns the JSON schema of the batch config, or an empty
// string if it cannot be generated.
func GetConfigSchema() string {
	schema, err := (&config.Config{}).GenerateSchemaJSON()
	if err != nil {
		return ""
	}

	return schema
}

func GetVersion() string {
	return version.GetVersion()
}

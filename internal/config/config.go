// Package config loads and validates batch run configuration files.
package config

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/cache"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes a batch run: where to read candles, where to write the
// results and which indicators to compute.
type Config struct {
	Version    string      `yaml:"version" json:"version" validate:"required" jsonschema:"title=Version,description=Library version this config was written for"`
	DataPath   string      `yaml:"data_path" json:"data_path" validate:"required" jsonschema:"title=Data Path,description=Parquet or CSV file with market data"`
	OutputPath string      `yaml:"output_path" json:"output_path" validate:"required" jsonschema:"title=Output Path,description=Parquet file the results are exported to"`
	Cache      CacheConfig `yaml:"cache" json:"cache" jsonschema:"title=Cache,description=Result cache settings"`
	Jobs       []Job       `yaml:"jobs" json:"jobs" validate:"required,min=1,dive" jsonschema:"title=Jobs,description=Indicator calculations to run"`
}

type CacheConfig struct {
	TTL        time.Duration `yaml:"ttl" json:"ttl" validate:"gte=0" jsonschema:"title=TTL,description=How long a cached result stays valid (e.g. 5s)"`
	MaxEntries int           `yaml:"max_entries" json:"max_entries" validate:"gte=0" jsonschema:"title=Max Entries,description=Maximum number of cached results"`
}

// Job is one indicator calculation over one symbol.
type Job struct {
	Name      string                     `yaml:"name" json:"name" validate:"required" jsonschema:"title=Name,description=Unique job name"`
	Symbol    string                     `yaml:"symbol" json:"symbol" validate:"required" jsonschema:"title=Symbol,description=Symbol to read from the data file"`
	Indicator types.IndicatorType        `yaml:"indicator" json:"indicator" validate:"required,oneof=sma ema wma bollinger_bands rsi macd stochastic_oscillator vwap obv" jsonschema:"title=Indicator"`
	Params    types.ParamsSpec           `yaml:"params" json:"params" jsonschema:"title=Params,description=Indicator parameters; omitted fields use defaults"`
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional inclusive start of the candle range"`
	EndTime   optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional inclusive end of the candle range"`
}

// UnmarshalYAML implements custom unmarshaling for Job
func (j *Job) UnmarshalYAML(value *yaml.Node) error {
	type job struct {
		Name      string              `yaml:"name"`
		Symbol    string              `yaml:"symbol"`
		Indicator types.IndicatorType `yaml:"indicator"`
		Params    types.ParamsSpec    `yaml:"params"`
		StartTime *time.Time          `yaml:"start_time"`
		EndTime   *time.Time          `yaml:"end_time"`
	}

	var raw job
	if err := value.Decode(&raw); err != nil {
		return err
	}

	j.Name = raw.Name
	j.Symbol = raw.Symbol
	j.Indicator = raw.Indicator
	j.Params = raw.Params
	j.StartTime = optional.None[time.Time]()
	j.EndTime = optional.None[time.Time]()

	if raw.StartTime != nil {
		j.StartTime = optional.Some(*raw.StartTime)
	}

	if raw.EndTime != nil {
		j.EndTime = optional.Some(*raw.EndTime)
	}

	return nil
}

// ResolvedParams returns the job's parameters with indicator defaults applied.
func (j Job) ResolvedParams() types.IndicatorParams {
	return j.Params.Resolve(j.Indicator)
}

// Load reads, parses and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse parses and validates a YAML config document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints, version compatibility, job name
// uniqueness and job time ranges.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := version.CheckVersionCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Jobs))

	for _, job := range c.Jobs {
		if seen[job.Name] {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "duplicate job name %q", job.Name)
		}

		seen[job.Name] = true

		if job.StartTime.IsSome() && job.EndTime.IsSome() && job.EndTime.Unwrap().Before(job.StartTime.Unwrap()) {
			return errors.Newf(errors.ErrCodeInvalidConfiguration, "job %q: end_time is before start_time", job.Name)
		}
	}

	return nil
}

// CacheSettings returns the cache TTL and size, falling back to the cache defaults.
func (c *Config) CacheSettings() (time.Duration, int) {
	ttl := c.Cache.TTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}

	maxEntries := c.Cache.MaxEntries
	if maxEntries <= 0 {
		maxEntries = cache.DefaultMaxEntries
	}

	return ttl, maxEntries
}

var (
	optionalTimeType  = reflect.TypeOf(optional.Option[time.Time]{})
	durationType      = reflect.TypeOf(time.Duration(0))
	indicatorTypeType = reflect.TypeOf(types.IndicatorType(""))
)

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	indicators := make([]any, len(types.AllIndicatorTypes))
	for i, t := range types.AllIndicatorTypes {
		indicators[i] = string(t)
	}

	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case optionalTimeType:
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			case durationType:
				return &jsonschema.Schema{
					Type:    "string",
					Pattern: `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
				}
			case indicatorTypeType:
				return &jsonschema.Schema{
					Type: "string",
					Enum: indicators,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "argo-indicators-config"
	schema.Description = "Configuration schema for argo-indicators batch runs"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

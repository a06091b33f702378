package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jimmympnguyen/vast-mining-simulator/sim"
	"github.com/jimmympnguyen/vast-mining-simulator/sim/report"
	"github.com/jimmympnguyen/vast-mining-simulator/sim/trace"
)

// envPrefix namespaces environment overrides, e.g. MINESIM_SIM_NUM_TRUCKS.
const envPrefix = "MINESIM"

// FileConfig is the on-disk configuration. Sections mirror the simulator's
// historical INI layout: sim, truck, mining, unloading, plus output.
type FileConfig struct {
	Sim       SimSection       `mapstructure:"sim" yaml:"sim"`
	Truck     TruckSection     `mapstructure:"truck" yaml:"truck"`
	Mining    MiningSection    `mapstructure:"mining" yaml:"mining"`
	Unloading UnloadingSection `mapstructure:"unloading" yaml:"unloading"`
	Output    OutputSection    `mapstructure:"output" yaml:"output"`
}

// SimSection holds the clock and fleet size.
type SimSection struct {
	StepMinutes   int   `mapstructure:"step_minutes" yaml:"step_minutes" validate:"min=1"`
	DurationHours int   `mapstructure:"duration_hours" yaml:"duration_hours" validate:"min=0"`
	NumTrucks     int   `mapstructure:"num_trucks" yaml:"num_trucks" validate:"min=1"`
	NumStations   int   `mapstructure:"num_stations" yaml:"num_stations" validate:"min=1"`
	NumMines      int   `mapstructure:"num_mines" yaml:"num_mines" validate:"min=0"` // 0 means one per truck
	Seed          int64 `mapstructure:"seed" yaml:"seed"`
}

type TruckSection struct {
	TravelTimeMinutes int `mapstructure:"travel_time_minutes" yaml:"travel_time_minutes" validate:"min=0"`
}

type MiningSection struct {
	MinMiningTimeHours int `mapstructure:"min_mining_time_hours" yaml:"min_mining_time_hours" validate:"min=1"`
	MaxMiningTimeHours int `mapstructure:"max_mining_time_hours" yaml:"max_mining_time_hours" validate:"gtefield=MinMiningTimeHours"`
}

type UnloadingSection struct {
	UnloadTimeMinutes int `mapstructure:"unload_time_minutes" yaml:"unload_time_minutes" validate:"min=1"`
}

// OutputSection selects the sinks a finished run is written to.
type OutputSection struct {
	Format      string                `mapstructure:"format" yaml:"format" validate:"oneof=text json yaml"`
	MetricsFile string                `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
	TraceFile   string                `mapstructure:"trace_file" yaml:"trace_file,omitempty"`
	TraceLevel  string                `mapstructure:"trace_level" yaml:"trace_level" validate:"oneof=none decisions full"`
	Database    report.DatabaseConfig `mapstructure:"database" yaml:"database,omitempty"`
}

// ConfigurationError reports a configuration that cannot drive a simulation.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DefaultFileConfig returns the shipped defaults.
func DefaultFileConfig() *FileConfig {
	d := sim.DefaultSimulationConfig()
	return &FileConfig{
		Sim: SimSection{
			StepMinutes:   d.StepMinutes,
			DurationHours: d.SimDurationHours,
			NumTrucks:     d.NumTrucks,
			NumStations:   d.NumStations,
			NumMines:      d.NumMines,
			Seed:          d.Seed,
		},
		Truck:     TruckSection{TravelTimeMinutes: d.TravelTimeMinutes},
		Mining:    MiningSection{MinMiningTimeHours: d.MinMineTimeHours, MaxMiningTimeHours: d.MaxMineTimeHours},
		Unloading: UnloadingSection{UnloadTimeMinutes: d.UnloadTimeMinutes},
		Output: OutputSection{
			Format:     string(report.FormatText),
			TraceLevel: string(trace.TraceLevelNone),
		},
	}
}

// registerDefaults seeds v with every known key so that AutomaticEnv can
// override keys the config file does not mention.
func registerDefaults(v *viper.Viper) {
	d := DefaultFileConfig()
	v.SetDefault("sim.step_minutes", d.Sim.StepMinutes)
	v.SetDefault("sim.duration_hours", d.Sim.DurationHours)
	v.SetDefault("sim.num_trucks", d.Sim.NumTrucks)
	v.SetDefault("sim.num_stations", d.Sim.NumStations)
	v.SetDefault("sim.num_mines", d.Sim.NumMines)
	v.SetDefault("sim.seed", d.Sim.Seed)
	v.SetDefault("truck.travel_time_minutes", d.Truck.TravelTimeMinutes)
	v.SetDefault("mining.min_mining_time_hours", d.Mining.MinMiningTimeHours)
	v.SetDefault("mining.max_mining_time_hours", d.Mining.MaxMiningTimeHours)
	v.SetDefault("unloading.unload_time_minutes", d.Unloading.UnloadTimeMinutes)
	v.SetDefault("output.format", "")
	v.SetDefault("output.metrics_file", "")
	v.SetDefault("output.trace_file", "")
	v.SetDefault("output.trace_level", "")
	v.SetDefault("output.database.type", "")
	v.SetDefault("output.database.url", "")
	v.SetDefault("output.database.path", "")
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. .env file
// 3. Config file (configPath, or config.yaml in . or ./configs)
// 4. Defaults (lowest priority)
//
// Command-line flags are layered on top by the caller.
func LoadConfig(configPath string) (*FileConfig, error) {
	cfg, err := loadLayeredConfig(configPath)
	if err != nil {
		return nil, err
	}
	SetDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadLayeredConfig merges defaults, file, .env and environment without validating,
// so callers can overlay flags before the single validation pass.
func loadLayeredConfig(configPath string) (*FileConfig, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	registerDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use env vars and defaults
	}

	var cfg FileConfig
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// SetDefaults fills output settings left empty.
func SetDefaults(cfg *FileConfig) {
	if cfg.Output.Format == "" {
		cfg.Output.Format = string(report.FormatText)
	}
	if cfg.Output.TraceLevel == "" {
		if cfg.Output.TraceFile != "" {
			cfg.Output.TraceLevel = string(trace.TraceLevelDecisions)
		} else {
			cfg.Output.TraceLevel = string(trace.TraceLevelNone)
		}
	}
	if cfg.Output.Database.Type == "sqlite" && cfg.Output.Database.Path == "" {
		cfg.Output.Database.Path = "minesim.db"
	}
}

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig checks field ranges and the cross-field rules the engine relies on.
// Every failure is a *ConfigurationError.
func ValidateConfig(cfg *FileConfig) error {
	if err := NewValidator().Validate(cfg); err != nil {
		return &ConfigurationError{Err: err}
	}

	step := cfg.Sim.StepMinutes
	divisible := []struct {
		name  string
		value int
	}{
		{"truck.travel_time_minutes", cfg.Truck.TravelTimeMinutes},
		{"unloading.unload_time_minutes", cfg.Unloading.UnloadTimeMinutes},
		{"one hour", 60},
	}
	for _, d := range divisible {
		if d.value%step != 0 {
			return &ConfigurationError{Err: fmt.Errorf("sim.step_minutes=%d must divide %s (%d)", step, d.name, d.value)}
		}
	}

	db := cfg.Output.Database
	if db.Type == "postgres" && db.URL == "" {
		return &ConfigurationError{Err: fmt.Errorf("output.database.url is required for postgres")}
	}
	if cfg.Output.TraceFile != "" && cfg.Output.TraceLevel == string(trace.TraceLevelNone) {
		return &ConfigurationError{Err: fmt.Errorf("output.trace_file requires output.trace_level decisions or full")}
	}
	return nil
}

// ToSimulationConfig converts a validated FileConfig into the engine's input.
func (c *FileConfig) ToSimulationConfig() sim.SimulationConfig {
	return sim.SimulationConfig{
		StepMinutes:       c.Sim.StepMinutes,
		TravelTimeMinutes: c.Truck.TravelTimeMinutes,
		UnloadTimeMinutes: c.Unloading.UnloadTimeMinutes,
		MinMineTimeHours:  c.Mining.MinMiningTimeHours,
		MaxMineTimeHours:  c.Mining.MaxMiningTimeHours,
		NumTrucks:         c.Sim.NumTrucks,
		NumStations:       c.Sim.NumStations,
		NumMines:          c.Sim.NumMines,
		SimDurationHours:  c.Sim.DurationHours,
		Seed:              c.Sim.Seed,
	}
}

// ParseDatabaseFlag turns a --db value into an archive config: postgres URLs
// select postgres, anything else is a sqlite file path.
func ParseDatabaseFlag(value string) report.DatabaseConfig {
	if strings.HasPrefix(value, "postgres://") || strings.HasPrefix(value, "postgresql://") {
		return report.DatabaseConfig{Type: "postgres", URL: value}
	}
	return report.DatabaseConfig{Type: "sqlite", Path: value}
}

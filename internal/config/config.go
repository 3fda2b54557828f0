// =============================================================================
// SAF-T Financial - Configuration Module
// =============================================================================
//
// This module is responsible for loading the CLI configuration file. The
// library packages never read configuration; every option here is translated
// into explicit parameters by the commands in cmd/.
//
// CONFIGURATION FILE (config.yaml):
//   - Output settings: directory and file name pattern for rewritten XML,
//     rendered reports and exported workbooks
//   - Processing settings: default strictness profile, writer indentation
//   - Logging settings: log level for the console logger
//
// The configuration file is optional. A missing file yields the defaults;
// a present but unreadable or invalid file is an error.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the CLI configuration loaded from config.yaml.
type Config struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory where generated files are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// FileNameFormat defines the format for output file names.
	// Placeholders:
	//   {name}      - Base name of the input file, extension stripped
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//
	// The extension is appended by the command producing the file.
	// Default: "{name}_{uuid}"
	FileNameFormat string `yaml:"file_name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// Profile is the default strictness profile for parsing.
	// Valid values: "strict", "relaxed", "sliced"
	// Default: "strict"
	Profile string `yaml:"profile"`

	// Indent is the indentation unit for written XML.
	// Default: two spaces
	Indent string `yaml:"indent"`

	// OmitXMLDeclaration suppresses the <?xml ...?> declaration on
	// written XML.
	// Default: false
	OmitXMLDeclaration bool `yaml:"omit_xml_declaration"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the configuration used when no file is present.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// Load reads the configuration file at configPath. A missing file is not an
// error; the defaults apply.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.FileNameFormat == "" {
		config.FileNameFormat = "{name}_{uuid}"
	}
	if config.Profile == "" {
		config.Profile = "strict"
	}
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// validate rejects option values the commands cannot act on.
func validate(config *Config) error {
	switch config.Profile {
	case "strict", "relaxed", "sliced":
	default:
		return fmt.Errorf("unknown profile %q (want strict, relaxed or sliced)", config.Profile)
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", config.LogLevel)
	}

	return nil
}

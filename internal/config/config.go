package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = "bjodds.hcl"

// Config represents the complete analyzer configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	UI     UISettings     `hcl:"ui,block"`
}

// ServerSettings contains HTTP front end settings
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// UISettings contains settings shared by the terminal and web forms
type UISettings struct {
	PulseMs   *int   `hcl:"pulse_ms,optional"`
	StartView string `hcl:"start_view,optional"`
	NoColor   bool   `hcl:"no_color,optional"`
}

// fileConfig mirrors Config with optional blocks so a file may omit either.
type fileConfig struct {
	Server *ServerSettings `hcl:"server,block"`
	UI     *UISettings     `hcl:"ui,block"`
}

const defaultPulseMs = 500

// Default returns the default configuration
func Default() *Config {
	pulse := defaultPulseMs
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		UI: UISettings{
			PulseMs:   &pulse,
			StartView: "home",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for anything left unset
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if fc.Server != nil {
		config.Server = *fc.Server
	}
	if fc.UI != nil {
		config.UI = *fc.UI
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.UI.PulseMs == nil {
		pulse := defaultPulseMs
		config.UI.PulseMs = &pulse
	}
	if config.UI.StartView == "" {
		config.UI.StartView = "home"
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Server.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if c.UI.PulseMs != nil && *c.UI.PulseMs < 0 {
		return fmt.Errorf("pulse_ms must not be negative: %d", *c.UI.PulseMs)
	}

	switch c.UI.StartView {
	case "home", "calculator":
	default:
		return fmt.Errorf("invalid start view: %s", c.UI.StartView)
	}

	return nil
}

// ServerAddress returns the full listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Pulse returns the result highlight duration
func (c *Config) Pulse() time.Duration {
	if c.UI.PulseMs == nil {
		return defaultPulseMs * time.Millisecond
	}
	return time.Duration(*c.UI.PulseMs) * time.Millisecond
}

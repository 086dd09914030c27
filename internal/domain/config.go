package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Endpoint     EndpointConfig     `mapstructure:"endpoint"`
	Save         SaveConfig         `mapstructure:"save"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains the local daemon's listen settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// EndpointConfig contains settings for the remote metadata/asset endpoints
type EndpointConfig struct {
	// BaseURL is prepended to the platform metadata paths and to the
	// asset locators returned by metadata lookups.
	BaseURL string `mapstructure:"base_url"`
	// Timeout of 0 disables the client timeout; an in-flight fetch then
	// runs until the remote side answers or the transport gives up.
	Timeout time.Duration `mapstructure:"timeout"`
}

// SaveConfig contains local save settings
type SaveConfig struct {
	Dir        string `mapstructure:"dir"`
	LedgerPath string `mapstructure:"ledger_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Sound   bool   `mapstructure:"sound"`
	Method  string `mapstructure:"method"` // osascript, notify-send, etc.
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Endpoint: EndpointConfig{
			BaseURL: "http://localhost:5000",
			Timeout: 0,
		},
		Save: SaveConfig{
			Dir:        "$HOME/Downloads/mediafetch",
			LedgerPath: "$HOME/Downloads/mediafetch/ledger.db",
		},
		Notification: NotificationConfig{
			Enabled: true,
			Sound:   true,
			Method:  "osascript",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}

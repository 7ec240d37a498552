package config

import "time"

// Config holds runtime settings for the gymctl CLI.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	// SessionFile is the SQLite file holding the current sign-in.
	SessionFile string
}

// LoadDefaults points the client at a local server.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8085"
	c.RequestTimeout = 10 * time.Second
	c.SessionFile = "gymctl.db"
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

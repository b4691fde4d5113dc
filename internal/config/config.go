package config

import "time"

// Config holds runtime settings for the admin console.
type Config struct {
	DatabaseDSN string

	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
	S3PublicBaseURL string

	StatusTTL           time.Duration
	RemoteTimeout       time.Duration
	OnlineCheckInterval time.Duration

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.S3Bucket = "noticias"
	c.S3Region = "us-east-1"
	c.StatusTTL = 5 * time.Second
	c.RemoteTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, then the environment, then the
// JSON file, then command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// DatabaseConfigured reports whether a database DSN is set.
func (c *Config) DatabaseConfigured() bool {
	return c.DatabaseDSN != ""
}

// BlobConfigured reports whether enough S3 settings are present to upload.
func (c *Config) BlobConfigured() bool {
	return c.S3AccessKey != "" && c.S3SecretKey != "" && c.S3BaseEndpoint != ""
}

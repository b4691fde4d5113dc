package config

import (
	"encoding/json"
	"os"

	"github.com/parroquia/contentadmin/internal/flagx"
	"github.com/parroquia/contentadmin/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Only keys present
// in the file override earlier sources.
type JsonConfig struct {
	DatabaseDSN         string         `json:"database_dsn"`
	S3AccessKey         string         `json:"s3_access_key"`
	S3SecretKey         string         `json:"s3_secret_key"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
	S3PublicBaseURL     string         `json:"s3_public_base_url"`
	StatusTTL           timex.Duration `json:"status_ttl"`
	RemoteTimeout       timex.Duration `json:"remote_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	LogLevel            string         `json:"log_level"`
	LogFormat           string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c or -config. It does
// nothing when no file is given and panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3PublicBaseURL, jc.S3PublicBaseURL)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.StatusTTL.Duration != 0 {
		cfg.StatusTTL = jc.StatusTTL.Duration
	}
	if jc.RemoteTimeout.Duration != 0 {
		cfg.RemoteTimeout = jc.RemoteTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/parroquia/contentadmin/internal/flagx"
)

// defaultEnvFile is read when -env is not given. A missing file is ignored.
var defaultEnvFile = ".env"

// parseEnv loads the dotenv file into the process environment and overlays
// cfg with every variable that is set. It panics when the file cannot be
// parsed or a duration is malformed.
func parseEnv(cfg *Config) {
	path := flagx.EnvFileFlags(defaultEnvFile)
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("load %s: %w", path, err))
	}

	strs := map[string]*string{
		"DATABASE_DSN":       &cfg.DatabaseDSN,
		"S3_ACCESS_KEY":      &cfg.S3AccessKey,
		"S3_SECRET_KEY":      &cfg.S3SecretKey,
		"S3_BUCKET":          &cfg.S3Bucket,
		"S3_REGION":          &cfg.S3Region,
		"S3_ENDPOINT":        &cfg.S3BaseEndpoint,
		"S3_PUBLIC_BASE_URL": &cfg.S3PublicBaseURL,
		"LOG_LEVEL":          &cfg.LogLevel,
		"LOG_FORMAT":         &cfg.LogFormat,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"STATUS_TTL":            &cfg.StatusTTL,
		"REMOTE_TIMEOUT":        &cfg.RemoteTimeout,
		"ONLINE_CHECK_INTERVAL": &cfg.OnlineCheckInterval,
	}
	for key, dst := range durations {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", key, err))
		}
		*dst = d
	}
}

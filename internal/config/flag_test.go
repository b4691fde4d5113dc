package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	base := func() *Config {
		return &Config{RemoteTimeout: 10 * time.Second, OnlineCheckInterval: 1500 * time.Millisecond}
	}

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-d", "db", "-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1",
			"-e", "http://endpoint", "-w", "https://cdn", "-i", "4", "-t", "20", "-l", "warn",
		}, expected: &Config{
			DatabaseDSN:         "db",
			S3AccessKey:         "user",
			S3SecretKey:         "password",
			S3Bucket:            "bucket",
			S3Region:            "us-west-1",
			S3BaseEndpoint:      "http://endpoint",
			S3PublicBaseURL:     "https://cdn",
			OnlineCheckInterval: 4 * time.Second,
			RemoteTimeout:       20 * time.Second,
			LogLevel:            "warn",
		}},
		{name: "unset durations keep sub-second values", args: []string{"cmd", "-c", "cfg.json", "-d", "db"},
			expected: &Config{DatabaseDSN: "db", RemoteTimeout: 10 * time.Second, OnlineCheckInterval: 1500 * time.Millisecond}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := base()

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

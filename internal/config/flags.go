package config

import (
	"flag"
	"os"
	"time"

	"github.com/parroquia/contentadmin/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. Only the flags listed in
// the package doc are read; os.Args is filtered with flagx.FilterArgs so the
// -c and -env flags handled elsewhere do not trip the parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-u", "-p", "-b", "-g", "-e", "-w", "-i", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket for news images")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3PublicBaseURL, "w", cfg.S3PublicBaseURL, "S3 public base URL")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	remoteTimeout := fs.Int("t", int(cfg.RemoteTimeout.Seconds()), "remote call timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Whole seconds only replace a duration when the flag was given.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		case "t":
			cfg.RemoteTimeout = time.Duration(*remoteTimeout) * time.Second
		}
	})
}

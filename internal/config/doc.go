// Package config loads runtime configuration for the admin console.
//
// Sources, lowest precedence first:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (".env", or the path given with -env) and the process
//     environment. Variables already set in the process are not overridden
//     by the file.
//  3. An optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Environment variables
//
//	DATABASE_DSN            PostgreSQL DSN
//	S3_ACCESS_KEY           S3 access key
//	S3_SECRET_KEY           S3 secret key
//	S3_BUCKET               bucket for news images
//	S3_REGION               S3 region
//	S3_ENDPOINT             S3 base endpoint, e.g. "http://127.0.0.1:9000"
//	S3_PUBLIC_BASE_URL      base of public object URLs
//	STATUS_TTL              how long a status message stays visible, e.g. "5s"
//	REMOTE_TIMEOUT          limit for one database or storage call
//	ONLINE_CHECK_INTERVAL   database reachability probe interval
//	LOG_LEVEL               debug, info, warn or error
//	LOG_FORMAT              text or json
//
// Flags
//
//	-d string   PostgreSQL DSN
//	-u string   S3 access key
//	-p string   S3 secret key
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-w string   S3 public base URL
//	-i int      online check interval (seconds)
//	-t int      remote call timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "5s" or integer
// nanoseconds:
//
//	{
//	  "database_dsn": "postgres://admin@127.0.0.1:5432/parroquia",
//	  "s3_bucket": "noticias",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "status_ttl": "5s",
//	  "remote_timeout": "10s",
//	  "log_format": "json"
//	}
package config

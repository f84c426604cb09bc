package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Controller
	ControllerURL      string
	ControllerUser     string
	ControllerPassword string
	QueryAPIVersion    string
	LoginAPIVersion    string
	ControllerTimeout  time.Duration
	InsecureTLS        bool

	// Time-series store
	InfluxURL    string
	InfluxOrg    string
	InfluxBucket string
	InfluxToken  string

	// Collection
	Interval time.Duration
	Once     bool

	// Status API
	Addr string

	// Local snapshot store
	DBPath string

	// Report mode: when non-empty, write a PDF venue report to this
	// path from the latest snapshot and exit.
	ReportPath string

	Debug bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables. Credentials and the
// store token are environment-only so they never land in process listings.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.ControllerURL = getEnv("AIRMON_CONTROLLER_URL", "https://localhost:8443")
	cfg.ControllerUser = getEnv("AIRMON_CONTROLLER_USER", "")
	cfg.ControllerPassword = getEnv("AIRMON_CONTROLLER_PASSWORD", "")
	cfg.QueryAPIVersion = getEnv("AIRMON_QUERY_API_VERSION", "v9_1")
	cfg.LoginAPIVersion = getEnv("AIRMON_LOGIN_API_VERSION", "v10_0")
	cfg.ControllerTimeout = getEnvDuration("AIRMON_CONTROLLER_TIMEOUT", 30*time.Second)
	cfg.InsecureTLS = getEnvBool("AIRMON_INSECURE_TLS", false)

	cfg.InfluxURL = getEnv("AIRMON_INFLUX_URL", "http://localhost:8086")
	cfg.InfluxOrg = getEnv("AIRMON_INFLUX_ORG", "wifi-org")
	cfg.InfluxBucket = getEnv("AIRMON_INFLUX_BUCKET", "wifi-streaming")
	cfg.InfluxToken = getEnv("AIRMON_INFLUX_TOKEN", "")

	cfg.Interval = getEnvDuration("AIRMON_INTERVAL", 60*time.Second)
	cfg.Addr = getEnv("AIRMON_ADDR", ":8080")
	cfg.DBPath = getEnv("AIRMON_DB", getDefaultDBPath())

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.ControllerURL, "controller", cfg.ControllerURL, "Controller base URL")
	flag.StringVar(&cfg.QueryAPIVersion, "query-api", cfg.QueryAPIVersion, "Controller query API version")
	flag.StringVar(&cfg.LoginAPIVersion, "login-api", cfg.LoginAPIVersion, "Controller login API version")
	flag.BoolVar(&cfg.InsecureTLS, "insecure-tls", cfg.InsecureTLS, "Skip TLS verification (self-signed controllers)")
	flag.StringVar(&cfg.InfluxURL, "influx", cfg.InfluxURL, "InfluxDB URL")
	flag.StringVar(&cfg.InfluxOrg, "influx-org", cfg.InfluxOrg, "InfluxDB organization")
	flag.StringVar(&cfg.InfluxBucket, "influx-bucket", cfg.InfluxBucket, "InfluxDB bucket")
	flag.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Collection interval")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Status API listen address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite snapshot database")
	flag.BoolVar(&cfg.Once, "once", false, "Run a single collection cycle and exit")
	flag.StringVar(&cfg.ReportPath, "report", "", "Write a PDF venue report to this path and exit")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")

	flag.Parse()

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Bare numbers are taken as seconds, matching older deployments.
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "airmon.db"
	}

	dir := filepath.Join(home, ".airmon")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: Could not create .airmon directory, using current dir: %v", err)
		return "airmon.db"
	}

	return filepath.Join(dir, "airmon.db")
}

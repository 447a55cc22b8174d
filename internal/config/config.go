package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Scheduling
	Strategy string
	Today    string // optional YYYY-MM-DD override; empty means the wall clock

	// Logging
	LogLevel   string
	LogFile    string
	LogConsole bool

	// Quotes
	QuoteURL        string
	QuoteTimeout    time.Duration
	QuoteRatePerSec int

	// HTTP API
	HTTPAddr string

	// SFTP
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPKnownHosts            string
	SFTPInsecureIgnoreHostKey bool
}

const (
	DefaultQuoteURL     = "https://zenquotes.io/api/random"
	DefaultQuoteTimeout = 10 * time.Second
)

func Defaults() Config {
	return Config{
		Strategy:                  "even",
		LogLevel:                  "info",
		LogConsole:                true,
		QuoteURL:                  DefaultQuoteURL,
		QuoteTimeout:              DefaultQuoteTimeout,
		QuoteRatePerSec:           1,
		HTTPAddr:                  "127.0.0.1:8000",
		SFTPPort:                  22,
		SFTPDir:                   "/schedules",
		SFTPInsecureIgnoreHostKey: true,
	}
}

// Load reads the configuration from the environment on top of Defaults.
func Load() Config {
	cfg := Defaults()
	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.Strategy = getenv("STUDYBUDDY_STRATEGY", cfg.Strategy)
	cfg.Today = getenv("STUDYBUDDY_TODAY", cfg.Today)

	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getenv("LOG_FILE", cfg.LogFile)
	cfg.LogConsole = getenvBool("LOG_CONSOLE", cfg.LogConsole)

	cfg.QuoteURL = getenv("QUOTE_URL", cfg.QuoteURL)
	cfg.QuoteTimeout = getenvDuration("QUOTE_TIMEOUT", cfg.QuoteTimeout)
	cfg.QuoteRatePerSec = getenvInt("QUOTE_RATE_PER_SEC", cfg.QuoteRatePerSec)

	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)

	cfg.SFTPHost = getenv("SFTP_HOST", cfg.SFTPHost)
	cfg.SFTPPort = getenvInt("SFTP_PORT", cfg.SFTPPort)
	cfg.SFTPUser = getenv("SFTP_USER", cfg.SFTPUser)
	cfg.SFTPPass = getenv("SFTP_PASS", cfg.SFTPPass)
	cfg.SFTPDir = getenv("SFTP_DIR", cfg.SFTPDir)
	cfg.SFTPKnownHosts = getenv("SFTP_KNOWN_HOSTS", cfg.SFTPKnownHosts)
	cfg.SFTPInsecureIgnoreHostKey = getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", cfg.SFTPInsecureIgnoreHostKey)
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(k string, def time.Duration) time.Duration {
	d, err := ParseDurationOrDefault(k, os.Getenv(k), def)
	if err != nil {
		return def
	}
	return d
}

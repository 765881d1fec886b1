// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration for the radar service.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	Sources      []string // source identifiers to sync
	FeedBaseURLs []string // candidate feed hosts, tried in order per source

	ExcludeKeywords []string // title exclusion list, case-insensitive

	LookbackHours      int // default alert window when a watermark is unset
	SyncIntervalHours  int
	AlertIntervalHours int
	SyncParallelism    int

	DryRun bool // render deliveries without sending
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	sources := splitList(os.Getenv("SOURCES"))
	if len(sources) == 0 {
		return nil, fmt.Errorf("SOURCES is required (comma-separated source identifiers)")
	}

	baseURLs := splitList(os.Getenv("FEED_BASE_URLS"))
	if len(baseURLs) == 0 {
		return nil, fmt.Errorf("FEED_BASE_URLS is required (comma-separated, priority order)")
	}

	lookback, err := positiveInt("LOOKBACK_HOURS", 24)
	if err != nil {
		return nil, err
	}
	syncInterval, err := positiveInt("SYNC_INTERVAL_HOURS", 6)
	if err != nil {
		return nil, err
	}
	alertInterval, err := positiveInt("ALERT_INTERVAL_HOURS", 1)
	if err != nil {
		return nil, err
	}
	parallelism, err := positiveInt("SYNC_PARALLELISM", 4)
	if err != nil {
		return nil, err
	}

	port := os.Getenv("RADAR_PORT")
	if port == "" {
		port = "8083"
	}

	return &Config{
		Port:               port,
		DatabaseURL:        dbURL,
		RedisURL:           redisURL,
		Sources:            sources,
		FeedBaseURLs:       baseURLs,
		ExcludeKeywords:    splitList(os.Getenv("EXCLUDE_KEYWORDS")),
		LookbackHours:      lookback,
		SyncIntervalHours:  syncInterval,
		AlertIntervalHours: alertInterval,
		SyncParallelism:    parallelism,
		DryRun:             os.Getenv("DRY_RUN") == "true",
	}, nil
}

// Endpoints expands the base URL candidates into the per-source endpoint
// priority lists consumed by the fetcher.
func (c *Config) Endpoints() map[string][]string {
	endpoints := make(map[string][]string, len(c.Sources))
	for _, src := range c.Sources {
		urls := make([]string, 0, len(c.FeedBaseURLs))
		for _, base := range c.FeedBaseURLs {
			urls = append(urls, strings.TrimRight(base, "/")+"/"+src+"/postings")
		}
		endpoints[src] = urls
	}
	return endpoints
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func positiveInt(name string, def int) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return v, nil
}

// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Registry captures upstream Companies House API settings.
type Registry struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Traversal captures ownership-graph traversal limits and policy.
type Traversal struct {
	MaxDepth          int
	NodeBudget        int
	BranchConcurrency int
	// AssumeDomestic controls whether a corporate controller with no
	// country/place of registration is treated as UK-registered and
	// therefore recursable. Heuristic, not a verified fact.
	AssumeDomestic bool
}

// Cache captures resolver-level profile cache settings.
type Cache struct {
	ProfileTTL time.Duration
}

// RedisConfig captures Redis connection settings. An empty URL disables Redis
// and the service falls back to the in-memory cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Filings captures filing-history relevance filter settings.
type Filings struct {
	MaxResults int
}

// Server is the top-level application configuration.
type Server struct {
	Addr      string
	Registry  Registry
	Traversal Traversal
	Cache     Cache
	Redis     RedisConfig
	Filings   Filings
}

// FromEnv builds a Server config from environment variables.
// The API key is read but not validated here; main treats its absence as a
// fatal startup condition.
func FromEnv() Server {
	return Server{
		Addr: envString("OWNERGRAPH_ADDR", ":8080"),
		Registry: Registry{
			BaseURL: envString("COMPANIES_HOUSE_BASE_URL", "https://api.company-information.service.gov.uk"),
			APIKey:  os.Getenv("COMPANIES_HOUSE_API_KEY"),
			Timeout: envDuration("COMPANIES_HOUSE_TIMEOUT", 15*time.Second),
		},
		Traversal: Traversal{
			MaxDepth:          envInt("TRAVERSAL_MAX_DEPTH", 4),
			NodeBudget:        envInt("TRAVERSAL_NODE_BUDGET", 200),
			BranchConcurrency: envInt("TRAVERSAL_BRANCH_CONCURRENCY", 1),
			AssumeDomestic:    envBool("TRAVERSAL_ASSUME_DOMESTIC", true),
		},
		Cache: Cache{
			ProfileTTL: envDuration("PROFILE_CACHE_TTL", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Filings: Filings{
			MaxResults: envInt("FILINGS_MAX_RESULTS", 15),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends accepted by DatabaseType
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

const (
	DefaultPort           = 3319
	DefaultSQLiteURL      = "file:quickly-vote.db"
	DefaultRequestTimeout = 10 * time.Second
	DefaultFetchAttempts  = 3
)

type Config struct {
	Port           int
	APIURL         string
	SessionID      string
	DatabaseURL    string
	DatabaseType   string
	RequestTimeout time.Duration
	FetchAttempts  int
}

// ParseFlags loads .env if present, validates flags and fills in env fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Local API port")
	fs.StringVar(&cfg.APIURL, "a", "", "Polling API base URL")
	fs.StringVar(&cfg.SessionID, "s", "", "Session identifier")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Vote store URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Vote store type (memory, sqlite, postgres or redis)")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Timeout for each fetch or submission")
	fs.IntVar(&cfg.FetchAttempts, "fetch-attempts", 0, "Attempts for the question fetch")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv("API_URL")
	}
	if cfg.APIURL == "" {
		return Config{}, errors.New("API URL required (use -a or API_URL env)")
	}

	if cfg.SessionID == "" {
		cfg.SessionID = os.Getenv("SESSION_ID")
	}
	if cfg.SessionID == "" {
		return Config{}, errors.New("session required (use -s or SESSION_ID env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = StoreSQLite
		}
	}
	switch cfg.DatabaseType {
	case StoreMemory, StoreSQLite, StorePostgres, StoreRedis:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case StoreSQLite:
			cfg.DatabaseURL = DefaultSQLiteURL
		case StorePostgres, StoreRedis:
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if cfg.RequestTimeout == 0 {
		if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid REQUEST_TIMEOUT env variable")
			}
			cfg.RequestTimeout = d
		} else {
			cfg.RequestTimeout = DefaultRequestTimeout
		}
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, errors.New("timeout must be positive")
	}

	if cfg.FetchAttempts == 0 {
		if s := os.Getenv("FETCH_ATTEMPTS"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid FETCH_ATTEMPTS env variable")
			}
			cfg.FetchAttempts = n
		} else {
			cfg.FetchAttempts = DefaultFetchAttempts
		}
	}
	if cfg.FetchAttempts < 1 {
		return Config{}, errors.New("fetch attempts must be at least 1")
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gridironhq/gridiron/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

const (
	StatsSourceDB        = "db"
	StatsSourceGridStats = "gridstats"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration

	StorageDriver string
	DBURL         string

	CacheEnabled bool
	CacheTTL     time.Duration

	StatsSource                  string
	GridStatsBaseURL             string
	GridStatsToken               string
	GridStatsTimeout             time.Duration
	GridStatsMaxRetries          int
	GridStatsConcurrency         int
	GridStatsCircuitEnabled      bool
	GridStatsCircuitFailureCount int
	GridStatsCircuitOpenTimeout  time.Duration
	GridStatsCircuitHalfOpenMax  int

	ScoringJobToken string

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	if readTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_READ_TIMEOUT must be > 0")
	}

	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "120s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}
	if writeTimeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_WRITE_TIMEOUT must be > 0")
	}

	storageDriver, err := parseStorageDriver(getEnv("STORAGE_DRIVER", StorageMemory))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DATABASE_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	statsSource, err := parseStatsSource(getEnv("STATS_SOURCE", StatsSourceDB))
	if err != nil {
		return Config{}, err
	}

	gridStatsBaseURL := strings.TrimSpace(getEnv("GRIDSTATS_BASE_URL", ""))
	gridStatsToken := strings.TrimSpace(getEnv("GRIDSTATS_TOKEN", ""))
	if statsSource == StatsSourceGridStats && gridStatsBaseURL == "" {
		return Config{}, fmt.Errorf("GRIDSTATS_BASE_URL is required when STATS_SOURCE=%s", StatsSourceGridStats)
	}
	gridStatsTimeout, err := time.ParseDuration(getEnv("GRIDSTATS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDSTATS_TIMEOUT: %w", err)
	}
	if gridStatsTimeout <= 0 {
		return Config{}, fmt.Errorf("GRIDSTATS_TIMEOUT must be > 0")
	}
	gridStatsMaxRetries, err := getEnvAsInt("GRIDSTATS_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDSTATS_MAX_RETRIES: %w", err)
	}
	if gridStatsMaxRetries < 0 {
		return Config{}, fmt.Errorf("GRIDSTATS_MAX_RETRIES must be >= 0")
	}
	gridStatsConcurrency, err := getEnvAsInt("GRIDSTATS_CONCURRENCY", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDSTATS_CONCURRENCY: %w", err)
	}
	if gridStatsConcurrency < 1 {
		return Config{}, fmt.Errorf("GRIDSTATS_CONCURRENCY must be >= 1")
	}
	gridStatsCircuitEnabled, err := strconv.ParseBool(getEnv("GRIDSTATS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDSTATS_CIRCUIT_ENABLED: %w", err)
	}
	gridStatsCircuitFailureCount, err := getEnvAsInt("GRIDSTATS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDSTATS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	gridStatsCircuitOpenTimeout, err := time.ParseDuration(getEnv("GRIDSTATS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDSTATS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	gridStatsCircuitHalfOpenMax, err := getEnvAsInt("GRIDSTATS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GRIDSTATS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	return Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "gridiron"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       strings.TrimSpace(getEnv("HTTP_ADDR", ":8080")),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,

		StorageDriver: storageDriver,
		DBURL:         dbURL,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		StatsSource:                  statsSource,
		GridStatsBaseURL:             gridStatsBaseURL,
		GridStatsToken:               gridStatsToken,
		GridStatsTimeout:             gridStatsTimeout,
		GridStatsMaxRetries:          gridStatsMaxRetries,
		GridStatsConcurrency:         gridStatsConcurrency,
		GridStatsCircuitEnabled:      gridStatsCircuitEnabled,
		GridStatsCircuitFailureCount: gridStatsCircuitFailureCount,
		GridStatsCircuitOpenTimeout:  gridStatsCircuitOpenTimeout,
		GridStatsCircuitHalfOpenMax:  gridStatsCircuitHalfOpenMax,

		ScoringJobToken: strings.TrimSpace(getEnv("SCORING_JOB_TOKEN", "")),

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           getEnv("PYROSCOPE_APP_NAME", "gridiron"),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		LogLevel: parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseStorageDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StorageMemory, StoragePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", v, StorageMemory, StoragePostgres)
	}
}

func parseStatsSource(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case StatsSourceDB, StatsSourceGridStats:
		return value, nil
	default:
		return "", fmt.Errorf("invalid STATS_SOURCE %q: valid values are %s, %s", v, StatsSourceDB, StatsSourceGridStats)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

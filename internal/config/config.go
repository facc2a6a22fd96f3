package config

import (
	"time"
)

// Default configuration values.
const (
	defaultServiceName       = "phrase-gate"
	defaultServiceVersion    = "1.0.0"
	defaultServicePort       = 8090
	defaultConcurrency       = 4
	defaultMaxBatchSize      = 50
	defaultSoftLatency       = 800 * time.Millisecond
	defaultHardLatency       = 1500 * time.Millisecond
	defaultDistinctWeight    = 0.25
	defaultDescribeWeight    = 0.30
	defaultHeuristicsWeight  = 0.25
	defaultCulturalWeight    = 0.20
	defaultPopularitySource  = "sitelinks"
	defaultWikimediaBaseURL  = "https://wikimedia.org/api/rest_v1"
	defaultWikimediaRPS      = 2.0
	defaultWikimediaTimeout  = 10 * time.Second
	defaultDBHost            = "localhost"
	defaultDBPort            = 5432
	defaultDBUser            = "postgres"
	defaultDBName            = "phrasegate"
	defaultDBSSLMode         = "disable"
	defaultDBMaxConns        = 25
	defaultDBMaxIdleConns    = 5
	defaultSQLitePath        = "phrase_reviews.db"
	defaultESURL             = "http://localhost:9200"
	defaultESMaxRetries      = 3
	defaultESTimeout         = 30 * time.Second
	defaultSubmissionsIndex  = "phrase_submissions"
	defaultPollInterval      = 30 * time.Second
	defaultPollBatchSize     = 25
	defaultPollRPS           = 10.0
	defaultRedisAddress      = "localhost:6379"
	defaultRedisCacheTTL     = 24 * time.Hour
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
)

// Config holds all configuration for the phrase-gate service.
type Config struct {
	Service       ServiceConfig       `yaml:"service"`
	Logging       LoggingConfig       `yaml:"logging"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Corpus        CorpusConfig        `yaml:"corpus"`
	Popularity    PopularityConfig    `yaml:"popularity"`
	Database      DatabaseConfig      `yaml:"database"`
	SQLite        SQLiteConfig        `yaml:"sqlite"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Poller        PollerConfig        `yaml:"poller"`
	Redis         RedisConfig         `yaml:"redis"`
	Auth          AuthConfig          `yaml:"auth"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"PHRASEGATE_PORT"  yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"        yaml:"debug"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// ScoringConfig holds decision-engine settings. Weights default to the
// engine's standard mix; classification thresholds are fixed in the scorer
// package and deliberately not configurable.
type ScoringConfig struct {
	Concurrency           int           `env:"PHRASEGATE_CONCURRENCY" yaml:"concurrency"`
	MaxBatchSize          int           `env:"PHRASEGATE_MAX_BATCH"   yaml:"max_batch_size"`
	SoftLatencyTarget     time.Duration `yaml:"soft_latency_target"`
	HardLatencyTarget     time.Duration `yaml:"hard_latency_target"`
	DistinctivenessWeight float64       `yaml:"distinctiveness_weight"`
	DescribabilityWeight  float64       `yaml:"describability_weight"`
	HeuristicsWeight      float64       `yaml:"heuristics_weight"`
	CulturalWeight        float64       `yaml:"cultural_weight"`
}

// CorpusConfig holds lookup-corpus file paths. Empty paths fall back to the
// curated built-in tables, so the service always starts.
type CorpusConfig struct {
	EntitiesPath     string `env:"PHRASEGATE_ENTITIES_PATH"     yaml:"entities_path"`
	ConcretenessPath string `env:"PHRASEGATE_CONCRETENESS_PATH" yaml:"concreteness_path"`
	CategoriesPath   string `env:"PHRASEGATE_CATEGORIES_PATH"   yaml:"categories_path"`
}

// PopularityConfig selects and tunes the popularity signal backend.
type PopularityConfig struct {
	// Source is "sitelinks" (deterministic, in-process) or "wikimedia"
	// (pageview API, network).
	Source            string        `env:"PHRASEGATE_POPULARITY_SOURCE" yaml:"source"`
	WikimediaBaseURL  string        `yaml:"wikimedia_base_url"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Timeout           time.Duration `yaml:"timeout"`
	CacheEnabled      bool          `env:"PHRASEGATE_POPULARITY_CACHE" yaml:"cache_enabled"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
}

// DatabaseConfig holds Postgres configuration for decision history.
type DatabaseConfig struct {
	Enabled         bool          `env:"POSTGRES_ENABLED"  yaml:"enabled"`
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// SQLiteConfig holds the local review-store location used by phrasectl.
type SQLiteConfig struct {
	Path string `env:"PHRASEGATE_SQLITE_PATH" yaml:"path"`
}

// ElasticsearchConfig holds submission-store configuration.
type ElasticsearchConfig struct {
	Enabled          bool          `env:"ELASTICSEARCH_ENABLED" yaml:"enabled"`
	URL              string        `env:"ELASTICSEARCH_URL"     yaml:"url"`
	Username         string        `yaml:"username"`
	Password         string        `yaml:"password"`
	MaxRetries       int           `yaml:"max_retries"`
	Timeout          time.Duration `yaml:"timeout"`
	SubmissionsIndex string        `yaml:"submissions_index"`
}

// PollerConfig holds intake-worker settings.
type PollerConfig struct {
	Interval          time.Duration `yaml:"interval"`
	BatchSize         int           `yaml:"batch_size"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// RedisConfig holds popularity-cache Redis configuration.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `yaml:"db"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, SetDefaults)
}

// SetDefaults applies default values to the config.
func SetDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setLoggingDefaults(&cfg.Logging)
	setScoringDefaults(&cfg.Scoring)
	setPopularityDefaults(&cfg.Popularity)
	setDatabaseDefaults(&cfg.Database)
	setSQLiteDefaults(&cfg.SQLite)
	setElasticsearchDefaults(&cfg.Elasticsearch)
	setPollerDefaults(&cfg.Poller)
	setRedisDefaults(&cfg.Redis)
	// Corpus and Auth defaults are intentionally empty: built-ins and
	// disabled auth respectively.
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func setScoringDefaults(s *ScoringConfig) {
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.MaxBatchSize == 0 {
		s.MaxBatchSize = defaultMaxBatchSize
	}
	if s.SoftLatencyTarget == 0 {
		s.SoftLatencyTarget = defaultSoftLatency
	}
	if s.HardLatencyTarget == 0 {
		s.HardLatencyTarget = defaultHardLatency
	}
	if s.DistinctivenessWeight == 0 {
		s.DistinctivenessWeight = defaultDistinctWeight
	}
	if s.DescribabilityWeight == 0 {
		s.DescribabilityWeight = defaultDescribeWeight
	}
	if s.HeuristicsWeight == 0 {
		s.HeuristicsWeight = defaultHeuristicsWeight
	}
	if s.CulturalWeight == 0 {
		s.CulturalWeight = defaultCulturalWeight
	}
}

func setPopularityDefaults(p *PopularityConfig) {
	if p.Source == "" {
		p.Source = defaultPopularitySource
	}
	if p.WikimediaBaseURL == "" {
		p.WikimediaBaseURL = defaultWikimediaBaseURL
	}
	if p.RequestsPerSecond == 0 {
		p.RequestsPerSecond = defaultWikimediaRPS
	}
	if p.Timeout == 0 {
		p.Timeout = defaultWikimediaTimeout
	}
	if p.CacheTTL == 0 {
		p.CacheTTL = defaultRedisCacheTTL
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setSQLiteDefaults(s *SQLiteConfig) {
	if s.Path == "" {
		s.Path = defaultSQLitePath
	}
}

func setElasticsearchDefaults(e *ElasticsearchConfig) {
	if e.URL == "" {
		e.URL = defaultESURL
	}
	if e.MaxRetries == 0 {
		e.MaxRetries = defaultESMaxRetries
	}
	if e.Timeout == 0 {
		e.Timeout = defaultESTimeout
	}
	if e.SubmissionsIndex == "" {
		e.SubmissionsIndex = defaultSubmissionsIndex
	}
}

func setPollerDefaults(p *PollerConfig) {
	if p.Interval == 0 {
		p.Interval = defaultPollInterval
	}
	if p.BatchSize == 0 {
		p.BatchSize = defaultPollBatchSize
	}
	if p.RequestsPerSecond == 0 {
		p.RequestsPerSecond = defaultPollRPS
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.Address == "" {
		r.Address = defaultRedisAddress
	}
}

package config

import (
	"errors"
	"time"

	usecasecontract "github.com/mikiasgoitom/traceblog/internal/usecase/contract"
	"github.com/spf13/viper"
)

// Config holds application configuration values.
type Config struct {
	APIBaseURL  string
	APIVersion  string
	HTTPTimeout time.Duration

	ListStaleTime     time.Duration
	DetailStaleTime   time.Duration
	CommentsStaleTime time.Duration
	CacheGCTime       time.Duration
	QueryRetry        int
	QueryRetryDelay   time.Duration

	RedisURL    string
	SnapshotTTL time.Duration
	MongoURI    string
	MongoDBName string

	JWTSecret          string
	AccessTokenExpiry  time.Duration
	Port               string
	RateLimitPerSecond float64
	SeedDemoData       bool
	DemoPhone          string
	DemoPassword       string
	BlogSearch         string

	LogLevel  string
	LogFormat string
}

var defaults = map[string]interface{}{
	"API_BASE_URL":                "http://localhost:8080",
	"API_VERSION":                 "v1",
	"HTTP_TIMEOUT":                "10s",
	"LIST_STALE_TIME":             "5m",
	"DETAIL_STALE_TIME":           "0s",
	"COMMENTS_STALE_TIME":         "0s",
	"CACHE_GC_TIME":               "5m",
	"QUERY_RETRY":                 3,
	"QUERY_RETRY_DELAY":           "1s",
	"REDIS_URL":                   "",
	"SNAPSHOT_TTL":                "10m",
	"MONGODB_URI":                 "",
	"MONGODB_DB_NAME":             "traceblog",
	"JWT_SECRET":                  "dev-secret-change-me",
	"ACCESS_TOKEN_EXPIRY_MINUTES": 60,
	"PORT":                        "8080",
	"RATE_LIMIT_PER_SECOND":       10.0,
	"SEED_DEMO_DATA":              true,
	"DEMO_PHONE":                  "",
	"DEMO_PASSWORD":               "",
	"BLOG_SEARCH":                 "",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
}

// NewConfig creates a new Config instance from environment variables and an
// optional config.json in the working directory. Invalid files fall back to
// defaults plus environment.
func NewConfig() usecasecontract.IConfigProvider {
	cfg, err := Load(".")
	if err != nil {
		cfg, _ = Load()
	}
	return cfg
}

// Load reads config.json from the first of paths that has one, then applies
// environment overrides on top of the defaults.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if len(paths) > 0 {
		v.SetConfigName("config")
		v.SetConfigType("json")
		for _, p := range paths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		APIBaseURL:  v.GetString("API_BASE_URL"),
		APIVersion:  v.GetString("API_VERSION"),
		HTTPTimeout: v.GetDuration("HTTP_TIMEOUT"),

		ListStaleTime:     v.GetDuration("LIST_STALE_TIME"),
		DetailStaleTime:   v.GetDuration("DETAIL_STALE_TIME"),
		CommentsStaleTime: v.GetDuration("COMMENTS_STALE_TIME"),
		CacheGCTime:       v.GetDuration("CACHE_GC_TIME"),
		QueryRetry:        v.GetInt("QUERY_RETRY"),
		QueryRetryDelay:   v.GetDuration("QUERY_RETRY_DELAY"),

		RedisURL:    v.GetString("REDIS_URL"),
		SnapshotTTL: v.GetDuration("SNAPSHOT_TTL"),
		MongoURI:    v.GetString("MONGODB_URI"),
		MongoDBName: v.GetString("MONGODB_DB_NAME"),

		JWTSecret:          v.GetString("JWT_SECRET"),
		AccessTokenExpiry:  time.Minute * time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRY_MINUTES")),
		Port:               v.GetString("PORT"),
		RateLimitPerSecond: v.GetFloat64("RATE_LIMIT_PER_SECOND"),
		SeedDemoData:       v.GetBool("SEED_DEMO_DATA"),
		DemoPhone:          v.GetString("DEMO_PHONE"),
		DemoPassword:       v.GetString("DEMO_PASSWORD"),
		BlogSearch:         v.GetString("BLOG_SEARCH"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}
}

// GetAPIBaseURL returns the origin of the blog API, without the version path.
func (c *Config) GetAPIBaseURL() string { return c.APIBaseURL }

// GetAPIVersion returns the API version path segment, e.g. "v1".
func (c *Config) GetAPIVersion() string { return c.APIVersion }

// GetHTTPTimeout returns the per-request timeout of the blog client.
func (c *Config) GetHTTPTimeout() time.Duration { return c.HTTPTimeout }

// GetListStaleTime returns how long a cached list page stays fresh.
func (c *Config) GetListStaleTime() time.Duration { return c.ListStaleTime }

// GetDetailStaleTime returns how long a cached blog detail stays fresh.
func (c *Config) GetDetailStaleTime() time.Duration { return c.DetailStaleTime }

// GetCommentsStaleTime returns how long a cached comment page stays fresh.
func (c *Config) GetCommentsStaleTime() time.Duration { return c.CommentsStaleTime }

// GetCacheGCTime returns how long an unobserved entry is kept.
func (c *Config) GetCacheGCTime() time.Duration { return c.CacheGCTime }

func (c *Config) GetQueryRetry() int                  { return c.QueryRetry }
func (c *Config) GetQueryRetryDelay() time.Duration   { return c.QueryRetryDelay }
func (c *Config) GetRedisURL() string                 { return c.RedisURL }
func (c *Config) GetSnapshotTTL() time.Duration       { return c.SnapshotTTL }
func (c *Config) GetMongoURI() string                 { return c.MongoURI }
func (c *Config) GetMongoDBName() string              { return c.MongoDBName }
func (c *Config) GetJWTSecret() string                { return c.JWTSecret }
func (c *Config) GetAccessTokenExpiry() time.Duration { return c.AccessTokenExpiry }
func (c *Config) GetPort() string                     { return c.Port }
func (c *Config) GetRateLimitPerSecond() float64      { return c.RateLimitPerSecond }
func (c *Config) GetSeedDemoData() bool               { return c.SeedDemoData }
func (c *Config) GetDemoPhone() string                { return c.DemoPhone }
func (c *Config) GetDemoPassword() string             { return c.DemoPassword }
func (c *Config) GetBlogSearch() string               { return c.BlogSearch }
func (c *Config) GetLogLevel() string                 { return c.LogLevel }
func (c *Config) GetLogFormat() string                { return c.LogFormat }

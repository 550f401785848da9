package usecasecontract

import "time"

// IConfigProvider exposes configuration values to the rest of the application.
type IConfigProvider interface {
	GetAPIBaseURL() string
	GetAPIVersion() string
	GetHTTPTimeout() time.Duration

	GetListStaleTime() time.Duration
	GetDetailStaleTime() time.Duration
	GetCommentsStaleTime() time.Duration
	GetCacheGCTime() time.Duration
	GetQueryRetry() int
	GetQueryRetryDelay() time.Duration

	GetRedisURL() string
	GetSnapshotTTL() time.Duration
	GetMongoURI() string
	GetMongoDBName() string

	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetPort() string
	GetRateLimitPerSecond() float64
	GetSeedDemoData() bool
	GetDemoPhone() string
	GetDemoPassword() string
	GetBlogSearch() string
	GetLogLevel() string
	GetLogFormat() string
}

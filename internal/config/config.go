package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	MongoURI string `envconfig:"MONGO_URI" required:"true"`
	MongoDB  string `envconfig:"MONGO_DB" default:"coursehub"`

	JWTUserSecret    string `envconfig:"JWT_USER_SECRET" required:"true"`
	JWTCreatorSecret string `envconfig:"JWT_CREATOR_SECRET" required:"true"`
	// 0 keeps tokens non-expiring to match the legacy contract. Set a value
	// to bound token lifetime.
	TokenTTLMin int `envconfig:"TOKEN_TTL_MIN" default:"0"`

	BcryptCost     int  `envconfig:"BCRYPT_COST" default:"9"`
	StrictPassword bool `envconfig:"STRICT_PASSWORD" default:"true"`
	CookieSecure   bool `envconfig:"COOKIE_SECURE" default:"true"`

	EnforceCourseExistsOnPurchase bool `envconfig:"ENFORCE_COURSE_EXISTS_ON_PURCHASE" default:"false"`
	PreventDuplicatePurchase      bool `envconfig:"PREVENT_DUPLICATE_PURCHASE" default:"false"`

	RateLimitMax       int    `envconfig:"RATE_LIMIT_MAX" default:"100"`
	RateLimitWindowMin int    `envconfig:"RATE_LIMIT_WINDOW_MIN" default:"15"`
	RedisURL           string `envconfig:"REDIS_URL"`

	// Optional object storage for course images. When unset the image
	// upload endpoint reports a generic failure.
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
	S3PublicURL string `envconfig:"S3_PUBLIC_URL"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

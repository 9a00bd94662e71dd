package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type AuthConfig struct {
	// JWTSecret signs the HS256 session tokens minted by this service.
	JWTSecret string
	// JWKSURL is the identity provider's key set, used to verify the ID
	// tokens presented at sign-in.
	JWKSURL    string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type FinanceConfig struct {
	// ManagementFeeRate is the agency's fraction of the fee-bearing
	// portion of each payment.
	ManagementFeeRate float64
}

type MailConfig struct {
	RelayURL string
	From     string
}

type InsightsConfig struct {
	Endpoint string
	APIKey   string
}

type AppConfig struct {
	Environment string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Auth        AuthConfig
	Finance     FinanceConfig
	Mail        MailConfig
	Insights    InsightsConfig
}

// Load reads config.yaml if present and lets NYUMBANI_-prefixed env vars
// override everything.
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("NYUMBANI")
	// Dots in config keys become underscores in env vars, so
	// NYUMBANI_POSTGRES_DSN overrides postgres.dsn.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")

	// Secrets default to empty so the keys are known to viper and an
	// env var alone can supply them.
	v.SetDefault("postgres.dsn", "")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.accesskey", "")
	v.SetDefault("storage.secretkey", "")
	v.SetDefault("storage.bucket", "nyumbani-documents")
	v.SetDefault("storage.usessl", false)

	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.jwksurl", "")
	v.SetDefault("auth.accessttl", "15m")
	v.SetDefault("auth.refreshttl", "720h")

	v.SetDefault("finance.managementfeerate", 0.10)

	v.SetDefault("mail.relayurl", "")
	v.SetDefault("mail.from", "noreply@nyumbani.app")

	v.SetDefault("insights.endpoint", "")
	v.SetDefault("insights.apikey", "")
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable the app reads.
	EnvPrefix = "FLAGS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Admin         AdminConfig
	Seed          SeedConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FLAGS_APP_ENV" required:"true"`
	Port         string `envconfig:"FLAGS_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"FLAGS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLAGS_LOG_WARN_STACK" default:"false"`
	CORSOrigins  string `envconfig:"FLAGS_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AllowedOrigins splits the configured CORS origin list.
func (a AppConfig) AllowedOrigins() []string {
	parts := strings.Split(a.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

type DBConfig struct {
	DSN string `envconfig:"FLAGS_DB_DSN"`

	Host     string `envconfig:"FLAGS_DB_HOST"`
	Port     int    `envconfig:"FLAGS_DB_PORT" default:"5432"`
	User     string `envconfig:"FLAGS_DB_USER"`
	Password string `envconfig:"FLAGS_DB_PASSWORD"`
	Name     string `envconfig:"FLAGS_DB_NAME"`
	SSLMode  string `envconfig:"FLAGS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FLAGS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FLAGS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FLAGS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLAGS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FLAGS_REDIS_URL"`
	Address      string        `envconfig:"FLAGS_REDIS_ADDR"`
	Password     string        `envconfig:"FLAGS_REDIS_PASSWORD"`
	DB           int           `envconfig:"FLAGS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FLAGS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLAGS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLAGS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLAGS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLAGS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FLAGS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FLAGS_JWT_ISSUER" default:"flags-api"`
	ExpirationMinutes int    `envconfig:"FLAGS_JWT_EXPIRATION_MINUTES" default:"10080"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FLAGS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FLAGS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FLAGS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FLAGS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FLAGS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"FLAGS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"FLAGS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"FLAGS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"FLAGS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"FLAGS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"FLAGS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// AdminConfig drives the idempotent admin provisioning step. When Email is
// empty no admin account is created.
type AdminConfig struct {
	Email    string `envconfig:"FLAGS_ADMIN_EMAIL"`
	Password string `envconfig:"FLAGS_ADMIN_PASSWORD"`
	Name     string `envconfig:"FLAGS_ADMIN_NAME" default:"Flags Admin"`
}

// SeedConfig controls the versioned seed loader.
type SeedConfig struct {
	AnonymousEmail string `envconfig:"FLAGS_SEED_ANONYMOUS_EMAIL" default:"anonymous@flags.local"`
	AnonymousName  string `envconfig:"FLAGS_SEED_ANONYMOUS_NAME" default:"Anonymous"`
	Statements     bool   `envconfig:"FLAGS_SEED_STATEMENTS" default:"true"`
	Questions      bool   `envconfig:"FLAGS_SEED_QUESTIONS" default:"true"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FLAGS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"FLAGS_DB_HOST": db.Host,
		"FLAGS_DB_USER": db.User,
		"FLAGS_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either FLAGS_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App            AppConfig
	DB             DBConfig
	Redis          RedisConfig
	JWT            JWTConfig
	Password       PasswordConfig
	AuthRateLimit  AuthRateLimitConfig
	ActiveSessions ActiveSessionsConfig
	Excel          ExcelConfig
	FeatureFlags   FeatureFlagsConfig
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
	Env          string `envconfig:"CASHBACK_APP_ENV" required:"true"`
	Port         string `envconfig:"CASHBACK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CASHBACK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CASHBACK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CASHBACK_DB_DSN"`
	Driver string `envconfig:"CASHBACK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CASHBACK_DB_HOST"`
	LegacyPort     int    `envconfig:"CASHBACK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CASHBACK_DB_USER"`
	LegacyPassword string `envconfig:"CASHBACK_DB_PASSWORD"`
	LegacyName     string `envconfig:"CASHBACK_DB_NAME"`
	LegacySSLMode  string `envconfig:"CASHBACK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CASHBACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CASHBACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CASHBACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CASHBACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CASHBACK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CASHBACK_REDIS_ADDR"`
	Password     string        `envconfig:"CASHBACK_REDIS_PASSWORD"`
	DB           int           `envconfig:"CASHBACK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CASHBACK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CASHBACK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CASHBACK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CASHBACK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CASHBACK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CASHBACK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CASHBACK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CASHBACK_JWT_EXPIRATION_MINUTES" required:"true"`
}

// TTL returns the access token lifetime configured in minutes.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CASHBACK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CASHBACK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CASHBACK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CASHBACK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CASHBACK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	SigninWindow        time.Duration `envconfig:"CASHBACK_AUTH_RATE_LIMIT_SIGNIN_WINDOW" default:"1m"`
	SigninUsernameLimit int           `envconfig:"CASHBACK_AUTH_RATE_LIMIT_SIGNIN_USERNAME_LIMIT" default:"5"`
	SigninIPLimit       int           `envconfig:"CASHBACK_AUTH_RATE_LIMIT_SIGNIN_IP_LIMIT" default:"20"`
	SignupWindow        time.Duration `envconfig:"CASHBACK_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupUsernameLimit int           `envconfig:"CASHBACK_AUTH_RATE_LIMIT_SIGNUP_USERNAME_LIMIT" default:"3"`
	SignupIPLimit       int           `envconfig:"CASHBACK_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type ActiveSessionsConfig struct {
	TTL           time.Duration `envconfig:"CASHBACK_ACTIVE_SESSIONS_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"CASHBACK_ACTIVE_SESSIONS_SWEEP_INTERVAL" default:"1m"`
}

type ExcelConfig struct {
	TemplatePath string `envconfig:"CASHBACK_EXCEL_TEMPLATE_PATH" default:"assets/templates/case-import-template.csv"`
	MaxUploadMB  int    `envconfig:"CASHBACK_EXCEL_MAX_UPLOAD_MB" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CASHBACK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Identity      IdentityConfig
	Secrets       SecretsConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	// Bundle-sourced credentials arrive after Load; DSN assembly waits for
	// the bundle override in that mode.
	if cfg.Secrets.Source != SecretSourceBundle {
		if err := cfg.DB.EnsureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COAUTO_APP_ENV" required:"true"`
	Port         string `envconfig:"COAUTO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COAUTO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COAUTO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"COAUTO_DB_DSN"`
	Driver string `envconfig:"COAUTO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"COAUTO_DB_HOST"`
	Port     int    `envconfig:"COAUTO_DB_PORT" default:"5432"`
	User     string `envconfig:"COAUTO_DB_USER"`
	Password string `envconfig:"COAUTO_DB_PASSWORD"`
	Name     string `envconfig:"COAUTO_DB_NAME"`
	SSLMode  string `envconfig:"COAUTO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COAUTO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COAUTO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COAUTO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COAUTO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COAUTO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"COAUTO_REDIS_ADDR"`
	Password     string        `envconfig:"COAUTO_REDIS_PASSWORD"`
	DB           int           `envconfig:"COAUTO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COAUTO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COAUTO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COAUTO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COAUTO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COAUTO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// IdentityConfig points the directory gateway at the external user pool.
type IdentityConfig struct {
	BaseURL      string        `envconfig:"COAUTO_IDENTITY_BASE_URL" required:"true"`
	ClientID     string        `envconfig:"COAUTO_IDENTITY_CLIENT_ID"`
	ClientSecret string        `envconfig:"COAUTO_IDENTITY_CLIENT_SECRET"`
	UserPoolID   string        `envconfig:"COAUTO_IDENTITY_USER_POOL_ID"`
	GroupName    string        `envconfig:"COAUTO_IDENTITY_GROUP_NAME" default:"coauto-users"`
	Timeout      time.Duration `envconfig:"COAUTO_IDENTITY_TIMEOUT" default:"10s"`
}

// SecretsConfig selects where credential bundles come from. When Source is
// "bundle", DB and identity credentials are resolved from the named bundle at
// boot instead of their individual variables.
type SecretsConfig struct {
	Source string `envconfig:"COAUTO_SECRET_SOURCE" default:"env"`
	Bundle string `envconfig:"COAUTO_SECRET_BUNDLE" default:"COAUTO"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"COAUTO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"COAUTO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"COAUTO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	SignupWindow       time.Duration `envconfig:"COAUTO_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit   int           `envconfig:"COAUTO_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit      int           `envconfig:"COAUTO_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"COAUTO_AUTO_MIGRATE" default:"false"`
}

// EnsureDSN assembles the DSN from its parts when no full DSN is set. It is
// deferred until after the secret-bundle override when credentials come from
// a bundle.
func (db *DBConfig) EnsureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range []string{EnvDBHost, EnvDBUser, EnvDBName} {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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

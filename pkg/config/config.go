package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"FLEETLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"FLEETLINE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FLEETLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLEETLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FLEETLINE_DB_DSN"`
	Driver string `envconfig:"FLEETLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FLEETLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"FLEETLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FLEETLINE_DB_USER"`
	LegacyPassword string `envconfig:"FLEETLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FLEETLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FLEETLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FLEETLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FLEETLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FLEETLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLEETLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: when neither URL nor address is set, the API runs
// without the idempotency replay guard.
type RedisConfig struct {
	URL          string        `envconfig:"FLEETLINE_REDIS_URL"`
	Address      string        `envconfig:"FLEETLINE_REDIS_ADDR"`
	Password     string        `envconfig:"FLEETLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FLEETLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FLEETLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLEETLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLEETLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLEETLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLEETLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FLEETLINE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FLEETLINE_AUTO_MIGRATE" default:"false"`
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

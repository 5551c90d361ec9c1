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
	Import       ImportConfig
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
	Env          string `envconfig:"LABSTOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"LABSTOCK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LABSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LABSTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LABSTOCK_DB_DSN"`
	Driver string `envconfig:"LABSTOCK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LABSTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"LABSTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LABSTOCK_DB_USER"`
	LegacyPassword string `envconfig:"LABSTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"LABSTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"LABSTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LABSTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LABSTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LABSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LABSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LABSTOCK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LABSTOCK_REDIS_ADDR"`
	Password     string        `envconfig:"LABSTOCK_REDIS_PASSWORD"`
	DB           int           `envconfig:"LABSTOCK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LABSTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LABSTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LABSTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LABSTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LABSTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type ImportConfig struct {
	MaxUploadMB       int           `envconfig:"LABSTOCK_IMPORT_MAX_UPLOAD_MB" default:"20"`
	HeaderScanRows    int           `envconfig:"LABSTOCK_IMPORT_HEADER_SCAN_ROWS" default:"10"`
	IdempotencyTTL    time.Duration `envconfig:"LABSTOCK_IMPORT_IDEMPOTENCY_TTL" default:"24h"`
	ReportPreviewRows int           `envconfig:"LABSTOCK_IMPORT_REPORT_PREVIEW_ROWS" default:"50"`
}

// MaxUploadBytes returns the multipart memory/size cap in bytes.
func (i ImportConfig) MaxUploadBytes() int64 {
	if i.MaxUploadMB <= 0 {
		return 20 << 20
	}
	return int64(i.MaxUploadMB) << 20
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LABSTOCK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LABSTOCK_AUTO_MIGRATE" default:"false"`
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

package config

const EnvPrefix = "LABSTOCK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "LABSTOCK_APP_ENV"
	EnvPort     = "LABSTOCK_APP_PORT"
	EnvLogLevel = "LABSTOCK_LOG_LEVEL"

	EnvDBDSN      = "LABSTOCK_DB_DSN"
	EnvDBHost     = "LABSTOCK_DB_HOST"
	EnvDBPort     = "LABSTOCK_DB_PORT"
	EnvDBUser     = "LABSTOCK_DB_USER"
	EnvDBPassword = "LABSTOCK_DB_PASSWORD"
	EnvDBName     = "LABSTOCK_DB_NAME"

	EnvRedisURL = "LABSTOCK_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

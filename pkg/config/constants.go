package config

// EnvPrefix is passed to envconfig; individual fields carry their full
// variable names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	SecretSourceEnv    = "env"
	SecretSourceBundle = "bundle"
)

const (
	EnvAppEnv = "COAUTO_APP_ENV"
	EnvPort   = "COAUTO_APP_PORT"

	EnvDBDSN  = "COAUTO_DB_DSN"
	EnvDBHost = "COAUTO_DB_HOST"
	EnvDBUser = "COAUTO_DB_USER"
	EnvDBName = "COAUTO_DB_NAME"

	EnvSecretSource = "COAUTO_SECRET_SOURCE"

	EnvRedisURL = "COAUTO_REDIS_URL"

	EnvIdentityBaseURL = "COAUTO_IDENTITY_BASE_URL"
)

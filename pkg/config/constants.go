package config

// EnvPrefix is passed to envconfig; every field carries an explicit key so the prefix only
// matters for fields without one.
const EnvPrefix = "NIA"

const (
	AppEnvDev = "dev"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv     = "NIA_APP_ENV"
	EnvPort       = "NIA_APP_PORT"
	EnvDBDSN      = "NIA_DB_DSN"
	EnvDBDriver   = "NIA_DB_DRIVER"
	EnvDBHost     = "NIA_DB_HOST"
	EnvDBUser     = "NIA_DB_USER"
	EnvDBName     = "NIA_DB_NAME"
	EnvDBPassword = "NIA_DB_PASSWORD"
	EnvRedisURL   = "NIA_REDIS_URL"
	EnvJWTSecret  = "NIA_JWT_SECRET"
	EnvJWTIssuer  = "NIA_JWT_ISSUER"
	EnvJWTExpMins = "NIA_JWT_EXPIRATION_MINUTES"
	EnvMailHost   = "NIA_MAIL_HOST"
	EnvMailNotify = "NIA_MAIL_NOTIFY_EMAIL"
	EnvCORS       = "NIA_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

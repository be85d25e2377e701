package config

// EnvPrefix is the envconfig prefix shared by every variable.
const EnvPrefix = "CASHBACK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "CASHBACK_APP_ENV"
	EnvPort       = "CASHBACK_APP_PORT"
	EnvDBDSN      = "CASHBACK_DB_DSN"
	EnvDBHost     = "CASHBACK_DB_HOST"
	EnvDBUser     = "CASHBACK_DB_USER"
	EnvDBName     = "CASHBACK_DB_NAME"
	EnvRedisURL   = "CASHBACK_REDIS_URL"
	EnvJWTSecret  = "CASHBACK_JWT_SECRET"
	EnvJWTIssuer  = "CASHBACK_JWT_ISSUER"
	EnvJWTExpMins = "CASHBACK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

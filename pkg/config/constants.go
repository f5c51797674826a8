package config

const (
	EnvPrefix = "FLEETLINE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FLEETLINE_DB_DSN"
	EnvDBHost = "FLEETLINE_DB_HOST"
	EnvDBUser = "FLEETLINE_DB_USER"
	EnvDBName = "FLEETLINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

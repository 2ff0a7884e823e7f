package config

const (
	DefaultConfigFile = "config.yaml"

	// EnvFile is loaded into the environment before anything else.
	EnvFile = ".env"
)

package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the daemon runtime settings. Values come from the environment,
// optionally seeded from a .env file in the working directory.
type Config struct {
	// ListenAddr is the address the HTTP API binds to.
	ListenAddr string

	// GenesisPath points to the JSON file with the initial state.
	GenesisPath string

	// Debug lowers the log level to debug.
	Debug bool
}

// Init loads the environment and returns the daemon configuration.
func Init() *Config {
	// A missing .env file is fine, plain environment variables still apply.
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("GENESIS_PATH", "genesis.json")
	v.SetDefault("DEBUG", false)

	return &Config{
		ListenAddr:  v.GetString("LISTEN_ADDR"),
		GenesisPath: v.GetString("GENESIS_PATH"),
		Debug:       v.GetBool("DEBUG"),
	}
}

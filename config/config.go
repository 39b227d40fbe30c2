// Package config defines process configuration and loading.
package config

import "time"

// Config contains process configuration. Extend as needed.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBName and MongoURI configure the backing MongoDB.
	DBName   string `koanf:"db_name"`
	MongoURI string `koanf:"mongo_uri"`

	// PoolID and Season scope every stored document.
	PoolID string `koanf:"pool_id"`
	Season int    `koanf:"season"`

	// ProviderURL and ProviderKey configure the results provider client.
	ProviderURL string `koanf:"provider_url"`
	ProviderKey string `koanf:"provider_key"`

	// DiscordToken is the bot token used to open the Discord session.
	DiscordToken string `koanf:"discord_token"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Addr:     ":8080",
		DBName:   "poolbot",
		MongoURI: "mongodb://localhost:27017",
		PoolID:   "main",
		Season:   time.Now().Year(),
	}
}

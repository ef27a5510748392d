package arena

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string

	MatchDuration time.Duration
	TickInterval  time.Duration
	ForfeitGrace  time.Duration

	AuthEnabled bool
	AuthSecret  string
}

func NewConfig() Config {
	var config Config

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs/server")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	config.Port = viper.GetString("Server.Port")
	config.MatchDuration = mustParseDuration("Arena.MatchDuration")
	config.TickInterval = mustParseDuration("Arena.TickInterval")
	config.ForfeitGrace = mustParseDuration("Arena.ForfeitGrace")
	config.AuthEnabled = viper.GetBool("Auth.Enabled")
	config.AuthSecret = viper.GetString("AUTH_SECRET")
	if config.AuthSecret == "" {
		config.AuthSecret = viper.GetString("Auth.Secret")
	}
	if config.AuthEnabled && config.AuthSecret == "" {
		panic(fmt.Errorf("auth enabled but no signing secret configured"))
	}

	return config
}

func mustParseDuration(key string) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}
	return d
}

func (c Config) sessionConfig() SessionConfig {
	return SessionConfig{
		MatchDuration: c.MatchDuration,
		TickInterval:  c.TickInterval,
		ForfeitGrace:  c.ForfeitGrace,
	}
}

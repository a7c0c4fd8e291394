// Package config - post service configuration
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/alwitt/scribe/db"
	"github.com/apex/log"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config post service configuration
type Config struct {
	// DBDriver SQL driver, sqlite or postgres
	DBDriver string `env:"SCRIBE_DB_DRIVER" envDefault:"sqlite" validate:"required,oneof=sqlite postgres"`
	// DBDSN database file (sqlite) or connection string (postgres)
	DBDSN string `env:"SCRIBE_DB_DSN" envDefault:"scribe.db" validate:"required"`
	// DBLogLevel SQL log level
	DBLogLevel string `env:"SCRIBE_DB_LOG_LEVEL" envDefault:"error" validate:"required,oneof=silent error warn info"`

	// RSACertFile file path to the primary RSA certificate PEM
	RSACertFile string `env:"SCRIBE_RSA_CERT_FILE" validate:"required"`
	// RSAKeyFile file path to the primary RSA certificate private key PEM
	RSAKeyFile string `env:"SCRIBE_RSA_KEY_FILE" validate:"required"`

	// ListenAddr REST API listen address
	ListenAddr string `env:"SCRIBE_LISTEN_ADDR" envDefault:"127.0.0.1:8080" validate:"required"`
	// TokenMaxAge oldest acceptable post authorization
	TokenMaxAge time.Duration `env:"SCRIBE_TOKEN_MAX_AGE" envDefault:"5m" validate:"gt=0"`

	// LogLevel application log level
	LogLevel string `env:"SCRIBE_LOG_LEVEL" envDefault:"info" validate:"required,oneof=debug info warn error fatal"`
}

/*
Load read the configuration from the environment. Variables in the optional dotenv files
are added to the environment first, without overriding what is already set.

	@param dotEnvFiles ...string - dotenv files to seed the environment from
	@returns the configuration
*/
func Load(dotEnvFiles ...string) (Config, error) {
	for _, file := range dotEnvFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("failed to read dotenv file '%s' [%w]", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment [%w]", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration [%w]", err)
	}
	return cfg, nil
}

// Dialector GORM dialector of the configured database
func (c Config) Dialector() (gorm.Dialector, error) {
	return db.GetDialector(c.DBDriver, c.DBDSN)
}

// SQLLogLevel GORM log level of the configured SQL log level
func (c Config) SQLLogLevel() logger.LogLevel {
	switch c.DBLogLevel {
	case "silent":
		return logger.Silent
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Error
	}
}

// ApplyLogLevel set the application log level
func (c Config) ApplyLogLevel() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("unknown log level '%s' [%w]", c.LogLevel, err)
	}
	log.SetLevel(level)
	return nil
}

package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alwitt/scribe/config"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("SCRIBE_RSA_CERT_FILE", "/tmp/cert.pem")
	t.Setenv("SCRIBE_RSA_KEY_FILE", "/tmp/key.pem")

	cfg, err := config.Load()
	assert.Nil(err)
	assert.Equal("sqlite", cfg.DBDriver)
	assert.Equal("scribe.db", cfg.DBDSN)
	assert.Equal("127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(time.Minute*5, cfg.TokenMaxAge)
	assert.Equal(logger.Error, cfg.SQLLogLevel())

	dialector, err := cfg.Dialector()
	assert.Nil(err)
	assert.Equal("sqlite", dialector.Name())

	assert.Nil(cfg.ApplyLogLevel())
	cfg.LogLevel = "chatty"
	assert.Error(cfg.ApplyLogLevel())
	log.SetLevel(log.DebugLevel)
}

func TestLoadValidation(t *testing.T) {
	assert := assert.New(t)

	// Missing key pair
	t.Setenv("SCRIBE_RSA_CERT_FILE", "")
	t.Setenv("SCRIBE_RSA_KEY_FILE", "")
	_, err := config.Load()
	assert.Error(err)

	t.Setenv("SCRIBE_RSA_CERT_FILE", "/tmp/cert.pem")
	t.Setenv("SCRIBE_RSA_KEY_FILE", "/tmp/key.pem")

	// Unknown driver
	t.Setenv("SCRIBE_DB_DRIVER", "mysql")
	_, err = config.Load()
	assert.Error(err)
	t.Setenv("SCRIBE_DB_DRIVER", "postgres")

	// Bad duration
	t.Setenv("SCRIBE_TOKEN_MAX_AGE", "forever")
	_, err = config.Load()
	assert.Error(err)
	t.Setenv("SCRIBE_TOKEN_MAX_AGE", "30s")

	cfg, err := config.Load()
	assert.Nil(err)
	assert.Equal("postgres", cfg.DBDriver)
	assert.Equal(time.Second*30, cfg.TokenMaxAge)
}

func TestLoadDotEnv(t *testing.T) {
	assert := assert.New(t)

	dotEnv := filepath.Join(t.TempDir(), ".env")
	assert.Nil(os.WriteFile(dotEnv, []byte(fmt.Sprintf(
		"SCRIBE_RSA_CERT_FILE=%s\nSCRIBE_RSA_KEY_FILE=%s\nSCRIBE_LISTEN_ADDR=%s\n",
		"/tmp/dotenv-cert.pem", "/tmp/dotenv-key.pem", "0.0.0.0:9000",
	)), 0o600))

	// Environment wins over the dotenv file
	t.Setenv("SCRIBE_RSA_CERT_FILE", "/tmp/env-cert.pem")
	// Registered so the dotenv value is cleaned up after the test
	t.Setenv("SCRIBE_RSA_KEY_FILE", "")
	assert.Nil(os.Unsetenv("SCRIBE_RSA_KEY_FILE"))
	t.Setenv("SCRIBE_LISTEN_ADDR", "")
	assert.Nil(os.Unsetenv("SCRIBE_LISTEN_ADDR"))

	cfg, err := config.Load(dotEnv, filepath.Join(t.TempDir(), "missing.env"))
	assert.Nil(err)
	assert.Equal("/tmp/env-cert.pem", cfg.RSACertFile)
	assert.Equal("/tmp/dotenv-key.pem", cfg.RSAKeyFile)
	assert.Equal("0.0.0.0:9000", cfg.ListenAddr)
}

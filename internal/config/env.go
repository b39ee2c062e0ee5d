package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/zhubert/chatter/internal/logger"
)

// Environment variables that override the config file.
const (
	EnvUserID   = "CHATTER_USER_ID"
	EnvUserName = "CHATTER_USER_NAME"
	EnvDataDir  = "CHATTER_DATA_DIR"
	EnvStore    = "CHATTER_STORE"
)

// envFile is read from the working directory when present.
var envFile = ".env"

// applyEnv loads envFile into the process environment (existing variables
// win) and copies any CHATTER_* overrides onto c.
func (c *Config) applyEnv() {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		logger.WithComponent("config").Warn("failed to read env file", "path", envFile, "error", err)
	}

	if v := os.Getenv(EnvUserID); v != "" {
		c.UserID = v
	}
	if v := os.Getenv(EnvUserName); v != "" {
		c.UserName = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvStore); v != "" {
		c.Store.Backend = v
	}
}

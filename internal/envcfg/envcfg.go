// Package envcfg reads the identity configuration from the environment,
// with an optional .env file for local use.
package envcfg

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ClientID string
	TenantID string
}

// MissingError names the required environment variables that are unset
// or empty.
type MissingError struct {
	Vars []string
}

func (e MissingError) Error() string {
	if len(e.Vars) == 1 {
		return fmt.Sprintf("%s environment variable is not set", e.Vars[0])
	}
	return fmt.Sprintf("%s environment variables are not set", strings.Join(e.Vars, " and "))
}

func Load() (Config, error) {
	// A missing .env file is the normal case outside development.
	_ = godotenv.Load()

	cfg := Config{
		ClientID: os.Getenv("CLIENT_ID"),
		TenantID: os.Getenv("TENANT_ID"),
	}

	var missing []string
	if cfg.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}
	if cfg.TenantID == "" {
		missing = append(missing, "TENANT_ID")
	}
	if len(missing) > 0 {
		return Config{}, MissingError{Vars: missing}
	}

	return cfg, nil
}

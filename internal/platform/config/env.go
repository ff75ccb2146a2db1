// Package config reads process configuration from the environment and
// reports fatal startup failures.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from environment variables declared by its env
// struct tags. Untagged fields keep their zero values.
func ParseEnv(target any) error {
	if target == nil {
		return errors.New("config target is required")
	}
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Package instance names the running process in logs and lease owner tokens.
package instance

import (
	"os"

	"github.com/angelmondragon/caffeineveins/pkg/env"
)

const (
	EnvInstanceID = "CAFFEINEVEINS_INSTANCE_ID"
	defaultID     = "local"
)

// GetID returns the configured instance id, else the hostname, else "local".
func GetID() string {
	if id := env.Get(EnvInstanceID, ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return defaultID
}

package enums

import (
	"fmt"
	"strings"
)

// StorageDriver selects the key-value substrate backing the persistence gateway.
type StorageDriver string

const (
	StorageDriverSQLite   StorageDriver = "sqlite"
	StorageDriverPostgres StorageDriver = "postgres"
	StorageDriverRedis    StorageDriver = "redis"
	StorageDriverMemory   StorageDriver = "memory"
)

var validStorageDrivers = []StorageDriver{
	StorageDriverSQLite,
	StorageDriverPostgres,
	StorageDriverRedis,
	StorageDriverMemory,
}

// String implements fmt.Stringer.
func (d StorageDriver) String() string {
	return string(d)
}

// IsValid reports whether the value is a known StorageDriver.
func (d StorageDriver) IsValid() bool {
	for _, candidate := range validStorageDrivers {
		if candidate == d {
			return true
		}
	}
	return false
}

// IsSQL reports whether the driver is served by the gorm-backed store.
func (d StorageDriver) IsSQL() bool {
	return d == StorageDriverSQLite || d == StorageDriverPostgres
}

// ParseStorageDriver converts raw input into a StorageDriver, case-insensitively.
func ParseStorageDriver(value string) (StorageDriver, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validStorageDrivers {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid storage driver %q", value)
}

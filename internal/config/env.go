package config

import (
	"fmt"
	"strings"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Validate reports the first required setting that is missing.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("ENV JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case StoreMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return fmt.Errorf("ENV MONGO_URI is required when STORE_DRIVER=%s", StoreMongo)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/fortkit/extension/internal/config"
	"github.com/fortkit/extension/internal/storage/memory"
)

// NewBackend creates a report log backend based on configuration
func NewBackend(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

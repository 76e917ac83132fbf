// Package config defines the configuration of the catalog service.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/abgdnv/storecatalog/pkg/config"
	"github.com/abgdnv/storecatalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Nats       config.NATSConfig       `koanf:"nats"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Catalog    CatalogConfig           `koanf:"catalog"`
}

// CatalogConfig tunes the catalog queries.
type CatalogConfig struct {
	// Dedup is "id" (default) or "value".
	Dedup      string `koanf:"dedup"`
	Uniqueness struct {
		Batched bool `koanf:"batched"`
	} `koanf:"uniqueness"`
}

func (c *CatalogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  dedup: %s\n", c.Dedup))
	b.WriteString(fmt.Sprintf("  uniqueness.batched: %t\n", c.Uniqueness.Batched))
	return b.String()
}

func (c *CatalogConfig) Validate() error {
	switch service.DedupMode(c.Dedup) {
	case "":
		c.Dedup = string(service.DedupByID)
	case service.DedupByID, service.DedupByValue:
	default:
		return fmt.Errorf("invalid catalog dedup mode: %q", c.Dedup)
	}
	return nil
}

// Options translates the catalog settings into service options.
func (c *CatalogConfig) Options() []service.Option {
	return []service.Option{
		service.WithDedup(service.DedupMode(c.Dedup)),
		service.WithBatchedUniqueness(c.Uniqueness.Batched),
	}
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Nats.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString(c.Catalog.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Database,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.GRPC,
		&c.Nats,
		&c.Telemetry,
		&c.Catalog,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

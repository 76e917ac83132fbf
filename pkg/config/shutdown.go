package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultShutdownTimeout bounds graceful shutdown when no timeout is configured.
	DefaultShutdownTimeout = 10 * time.Second
	maxShutdownTimeout     = 5 * time.Minute
)

// ShutdownConfig bounds how long servers and telemetry providers get to drain on exit.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the ShutdownConfig.
func (c *ShutdownConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shutdown ---\n")
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

// Validate applies DefaultShutdownTimeout to an unset timeout and rejects negative or excessive values.
func (c *ShutdownConfig) Validate() error {
	switch {
	case c.Timeout == 0:
		c.Timeout = DefaultShutdownTimeout
	case c.Timeout < 0:
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.Timeout)
	case c.Timeout > maxShutdownTimeout:
		return fmt.Errorf("shutdown timeout %s exceeds %s", c.Timeout, maxShutdownTimeout)
	}
	return nil
}

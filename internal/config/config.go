// Package config loads proctitle settings from environment variables.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// LinuxExeLink is the symlink Linux exposes for the running executable.
const LinuxExeLink = "/proc/self/exe"

// TitleConfig holds process title settings from environment variables
type TitleConfig struct {
	// Disabled turns SetFromCommandLine into a no-op
	Disabled bool `env:"PROCTITLE_DISABLE" envDefault:"false"`
	// ExeLink is the symlink resolved to substitute argv[0]. Empty disables substitution.
	ExeLink string `env:"PROCTITLE_EXE_LINK"`
	// Format is an optional expression producing the final title
	Format string `env:"PROCTITLE_FORMAT" envDefault:""`
	// Debug logs why a title fell back to a less informative form
	Debug bool `env:"PROCTITLE_DEBUG" envDefault:"false"`
}

// DefaultExeLink returns the executable symlink for the current platform,
// or "" where none exists.
func DefaultExeLink() string {
	if runtime.GOOS == "linux" {
		return LinuxExeLink
	}
	return ""
}

// ParseTitleConfig parses title configuration from environment variables.
// An unset PROCTITLE_EXE_LINK falls back to DefaultExeLink; set it to the
// empty string to disable argv[0] substitution.
func ParseTitleConfig() (*TitleConfig, error) {
	var cfg TitleConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse title config: %w", err)
	}
	if _, ok := os.LookupEnv("PROCTITLE_EXE_LINK"); !ok {
		cfg.ExeLink = DefaultExeLink()
	}
	return &cfg, nil
}

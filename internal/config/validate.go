package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/sessiontodo/internal/session"
	"github.com/idilsaglam/sessiontodo/internal/ui"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("storage.driver", c.Storage.Driver, oneOf(session.Drivers())),
		criterio.Run("storage.key", c.Storage.Key, notBlank),
		criterio.Run("storage.quota_bytes", c.Storage.QuotaBytes, nonNegative),
		criterio.Run("session", c.Session, sessionName),
		criterio.Run("log_level", c.LogLevel, validLogLevel),
		criterio.Run("theme", c.Theme, oneOf(ui.Themes())),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func oneOf(allowed []string) func(string) error {
	return func(v string) error {
		if !slices.Contains(allowed, strings.ToLower(v)) {
			return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
		}
		return nil
	}
}

func notBlank(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

// sessionName rejects names that would resolve outside the sessions
// directory of the file backend.
func sessionName(v string) error {
	if err := notBlank(v); err != nil {
		return err
	}
	if err := session.ValidateName(v); err != nil {
		return err
	}
	return nil
}

func nonNegative(v int) error {
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func validLogLevel(v string) error {
	if _, err := zerolog.ParseLevel(v); err != nil {
		return fmt.Errorf("unknown level %q", v)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

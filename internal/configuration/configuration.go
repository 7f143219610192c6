// Package configuration reads the application configuration from
// dotenv-style files.
package configuration

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

const (
	KeyRoot          = "DAVTREE_ROOT"
	KeyMinFree       = "DAVTREE_MIN_FREE"
	KeyVerifyHash    = "DAVTREE_VERIFY_HASH"
	KeyPreserveOwner = "DAVTREE_PRESERVE_OWNER"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

type ConfigProviderImpl struct {
	GenericConfigReader genericConfigProvider
}

func (c *ConfigProviderImpl) ReadGeneric(filenames ...string) (envMap map[string]string, err error) {
	return c.GenericConfigReader.Read(filenames...)
}

func (c *ConfigProviderImpl) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}
	return ""
}

// MapKeyToBool returns the boolean value of a key, or the fallback if the
// key is not set.
func (c *ConfigProviderImpl) MapKeyToBool(envMap map[string]string, key string, fallback bool) (bool, error) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return fallback, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
	}
	return boolValue, nil
}

// MapKeyToSize returns the byte size of a human-readable key (such as
// "500 MB" or "1GiB"), or the fallback if the key is not set.
func (c *ConfigProviderImpl) MapKeyToSize(envMap map[string]string, key string, fallback uint64) (uint64, error) {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return fallback, nil
	}
	size, err := humanize.ParseBytes(value)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, value)
	}
	return size, nil
}

// Apply reads the given configuration files and overrides all settings of
// the [AppConfiguration] that are set in them.
func (c *ConfigProviderImpl) Apply(config *AppConfiguration, filenames ...string) error {
	envMap, err := c.ReadGeneric(filenames...)
	if err != nil {
		return fmt.Errorf("(config) failed to read: %w", err)
	}

	if root := c.MapKeyToString(envMap, KeyRoot); root != "" {
		config.Root = root
	}

	if config.MinFree, err = c.MapKeyToSize(envMap, KeyMinFree, config.MinFree); err != nil {
		return fmt.Errorf("(config) %w", err)
	}

	if config.VerifyHash, err = c.MapKeyToBool(envMap, KeyVerifyHash, config.VerifyHash); err != nil {
		return fmt.Errorf("(config) %w", err)
	}

	if config.PreserveOwner, err = c.MapKeyToBool(envMap, KeyPreserveOwner, config.PreserveOwner); err != nil {
		return fmt.Errorf("(config) %w", err)
	}

	return nil
}

package ecs

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxEntities   = 10000
	DefaultMaxComponents = 64
)

// Config bounds and tunes a World.
//
// MaxEntities caps the number of entity slots; 0 means unbounded. MaxComponents caps the
// components attached to a single entity and must be positive after defaults are applied.
type Config struct {
	MaxEntities     int  `yaml:"maxEntities"`
	MaxComponents   int  `yaml:"maxComponents"`
	InitialCapacity int  `yaml:"initialCapacity"`
	IndexQueries    bool `yaml:"indexQueries"`
	// UniqueComponents rejects a second component with the same tag on one entity.
	// When false, duplicates are stored and lookups return the first match.
	UniqueComponents bool `yaml:"uniqueComponents"`

	Logger *log.Logger `yaml:"-"`
}

// DefaultConfig returns the configuration used by NewWorld when none is given.
func DefaultConfig() Config {
	return Config{
		MaxEntities:   DefaultMaxEntities,
		MaxComponents: DefaultMaxComponents,
	}
}

// LoadConfig reads a YAML config file. Missing fields keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data on top of DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports limits that a World cannot be built with.
func (c Config) Validate() error {
	if c.MaxEntities < 0 {
		return fmt.Errorf("maxEntities must not be negative, got %d", c.MaxEntities)
	}
	if c.MaxComponents < 0 {
		return fmt.Errorf("maxComponents must not be negative, got %d", c.MaxComponents)
	}
	if c.InitialCapacity < 0 {
		return fmt.Errorf("initialCapacity must not be negative, got %d", c.InitialCapacity)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.MaxComponents == 0 {
		c.MaxComponents = DefaultMaxComponents
	}
	if c.InitialCapacity == 0 {
		c.InitialCapacity = 256
	}
	if c.MaxEntities > 0 && c.InitialCapacity > c.MaxEntities {
		c.InitialCapacity = c.MaxEntities
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return c
}

package ecs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/tagecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := ecs.DefaultConfig()
	assert.Equal(t, 10000, cfg.MaxEntities)
	assert.Equal(t, 64, cfg.MaxComponents)
	assert.False(t, cfg.IndexQueries)
	assert.False(t, cfg.UniqueComponents)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ecs.ParseConfig([]byte(`
maxEntities: 500
indexQueries: true
uniqueComponents: true
`))
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.MaxEntities)
	assert.Equal(t, ecs.DefaultMaxComponents, cfg.MaxComponents)
	assert.True(t, cfg.IndexQueries)
	assert.True(t, cfg.UniqueComponents)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ecs.ParseConfig([]byte("maxEntities: [1, 2"))
	assert.Error(t, err)

	_, err = ecs.ParseConfig([]byte("maxComponents: -1"))
	assert.ErrorContains(t, err, "maxComponents")

	_, err = ecs.ParseConfig([]byte("maxEntities: -4"))
	assert.ErrorContains(t, err, "maxEntities")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxComponents: 8\ninitialCapacity: 32\n"), 0o644))

	cfg, err := ecs.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxComponents)
	assert.Equal(t, 32, cfg.InitialCapacity)
	assert.Equal(t, ecs.DefaultMaxEntities, cfg.MaxEntities)

	_, err = ecs.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewWorldAppliesDefaults(t *testing.T) {
	world, err := ecs.NewWorld(ecs.Config{Logger: quietLogger}, nil)
	require.NoError(t, err)

	cfg := world.Config()
	assert.Equal(t, 0, cfg.MaxEntities)
	assert.Equal(t, ecs.DefaultMaxComponents, cfg.MaxComponents)
	assert.NotNil(t, cfg.Logger)
	assert.Nil(t, world.Registry())

	_, err = ecs.NewWorld(ecs.Config{MaxEntities: -1}, nil)
	assert.Error(t, err)
}

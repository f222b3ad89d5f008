package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scetrov/evefrontier-routecore/internal/infrastructure/config"
)

func TestResolveDataDir_ExplicitWins(t *testing.T) {
	// Arrange
	t.Setenv("EVEFRONTIER_DATA_DIR", "/from/env")

	// Act
	dir, err := config.ResolveDataDir("/explicit", "/configured")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/explicit", dir)
}

func TestResolveDataDir_EnvWinsOverConfigured(t *testing.T) {
	// Arrange
	t.Setenv("EVEFRONTIER_DATA_DIR", "/from/env")

	// Act
	dir, err := config.ResolveDataDir("", "/configured")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/from/env", dir)
}

func TestResolveDataDir_ConfiguredWinsOverCacheDir(t *testing.T) {
	// Arrange
	t.Setenv("EVEFRONTIER_DATA_DIR", "")

	// Act
	dir, err := config.ResolveDataDir("", "/configured")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/configured", dir)
}

func TestResolveDataDir_FallsBackToCacheDir(t *testing.T) {
	// Arrange
	t.Setenv("EVEFRONTIER_DATA_DIR", "")

	// Act
	dir, err := config.ResolveDataDir("", "")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, dir)
}

func TestSetDefaults_FillsUnsetFields(t *testing.T) {
	// Arrange
	cfg := &config.Config{}

	// Act
	config.SetDefaults(cfg)

	// Assert
	assert.Equal(t, "starmap.db", cfg.DatasetFile)
	assert.Equal(t, "ships.csv", cfg.ShipCatalogFile)
	assert.Equal(t, ".spatial.bin", cfg.IndexSuffix)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotZero(t, cfg.WatchInterval)
}

func TestSetDefaults_DoesNotOverwriteSetFields(t *testing.T) {
	// Arrange
	cfg := &config.Config{DatasetFile: "custom.db"}

	// Act
	config.SetDefaults(cfg)

	// Assert
	assert.Equal(t, "custom.db", cfg.DatasetFile)
}

func TestValidateConfig_RejectsMissingRequiredFields(t *testing.T) {
	// Arrange
	cfg := &config.Config{}

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.Error(t, err)
}

func TestValidateConfig_AcceptsCompleteConfig(t *testing.T) {
	// Arrange
	cfg := &config.Config{
		DataDir:     "/data",
		DatasetFile: "starmap.db",
		IndexSuffix: ".spatial.bin",
	}

	// Act
	err := config.ValidateConfig(cfg)

	// Assert
	require.NoError(t, err)
}

func TestConfig_PathHelpers(t *testing.T) {
	// Arrange
	cfg := &config.Config{
		DataDir:         "/data",
		DatasetFile:     "starmap.db",
		IndexSuffix:     ".spatial.bin",
		ShipCatalogFile: "ships.csv",
	}

	// Act + Assert
	assert.Equal(t, "/data/starmap.db", cfg.DatasetPath())
	assert.Equal(t, "/data/starmap.db.spatial.bin", cfg.IndexPath())
	assert.Equal(t, "/data/ships.csv", cfg.ShipCatalogPath())
}

func TestConfig_ShipCatalogPathEmptyWhenUnset(t *testing.T) {
	// Arrange
	cfg := &config.Config{DataDir: "/data"}

	// Act + Assert
	assert.Empty(t, cfg.ShipCatalogPath())
}

package spatial_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

func TestVerifyFreshness_RoundTripIsFresh(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "starmap.db")
	require.NoError(t, os.WriteFile(datasetPath, []byte("dataset-contents-v1"), 0o644))

	hash, err := spatial.HashDataset(datasetPath)
	require.NoError(t, err)

	m, err := starmap.Build(nil, nil)
	require.NoError(t, err)
	idx := spatial.Build(m)
	indexPath := filepath.Join(dir, "starmap.spatial.bin")
	f, err := os.Create(indexPath)
	require.NoError(t, err)
	require.NoError(t, spatial.Write(f, idx, &spatial.SourceMetadata{SourceSHA256: hash}))
	require.NoError(t, f.Close())

	// Act
	report := spatial.VerifyFreshness(indexPath, datasetPath, false, "")

	// Assert
	assert.Equal(t, spatial.Fresh, report.Result)
}

func TestVerifyFreshness_StaleAfterDatasetMutation(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "starmap.db")
	require.NoError(t, os.WriteFile(datasetPath, []byte("dataset-d1"), 0o644))
	hash, err := spatial.HashDataset(datasetPath)
	require.NoError(t, err)

	m, err := starmap.Build(nil, nil)
	require.NoError(t, err)
	idx := spatial.Build(m)
	indexPath := filepath.Join(dir, "starmap.spatial.bin")
	f, err := os.Create(indexPath)
	require.NoError(t, err)
	require.NoError(t, spatial.Write(f, idx, &spatial.SourceMetadata{SourceSHA256: hash}))
	require.NoError(t, f.Close())

	// mutate the dataset after the index was built
	require.NoError(t, os.WriteFile(datasetPath, []byte("dataset-d2-mutated"), 0o644))

	// Act
	report := spatial.VerifyFreshness(indexPath, datasetPath, false, "")

	// Assert
	assert.Equal(t, spatial.Stale, report.Result)
}

func TestVerifyFreshness_MissingIndex(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "starmap.db")
	require.NoError(t, os.WriteFile(datasetPath, []byte("data"), 0o644))

	// Act
	report := spatial.VerifyFreshness(filepath.Join(dir, "missing.spatial.bin"), datasetPath, false, "")

	// Assert
	assert.Equal(t, spatial.Missing, report.Result)
}

func TestVerifyFreshness_DatasetMissing(t *testing.T) {
	// Arrange
	dir := t.TempDir()

	// Act
	report := spatial.VerifyFreshness(filepath.Join(dir, "idx.bin"), filepath.Join(dir, "missing.db"), false, "")

	// Assert
	assert.Equal(t, spatial.DatasetMissing, report.Result)
}

package starmaploader

import (
	"os"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/spatial"
	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// BuildIndex builds a spatial index from m and writes it to indexPath with
// source metadata pinned to datasetPath's content hash and releaseTag, for
// the index-build CLI command.
func BuildIndex(m *starmap.Starmap, datasetPath, indexPath, releaseTag string, buildUnixTime int64) error {
	datasetHash, err := spatial.HashDataset(datasetPath)
	if err != nil {
		return err
	}

	idx := spatial.Build(m)

	f, err := os.Create(indexPath)
	if err != nil {
		return err
	}
	defer f.Close()

	meta := &spatial.SourceMetadata{
		SourceSHA256:  datasetHash,
		ReleaseTag:    releaseTag,
		BuildUnixTime: buildUnixTime,
	}
	return spatial.Write(f, idx, meta)
}

// VerifyIndex checks whether the index at indexPath is fresh against the
// dataset at datasetPath, for the index-verify CLI command.
func VerifyIndex(indexPath, datasetPath string, strict bool, expectedReleaseTag string) spatial.FreshnessReport {
	return spatial.VerifyFreshness(indexPath, datasetPath, strict, expectedReleaseTag)
}

// LoadIndex reads the spatial index at indexPath, returning nil (not an
// error) when the file is missing so callers can fall back to an
// in-memory rebuild, per spec §4.4's "index optional" behavior.
func LoadIndex(indexPath string) (*spatial.Index, *spatial.SourceMetadata, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer f.Close()
	return spatial.Read(f)
}

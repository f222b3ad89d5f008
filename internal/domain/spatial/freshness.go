package spatial

import (
	"crypto/sha256"
	"io"
	"os"
)

// FreshnessResult is the diagnostic enum VerifyFreshness returns. It is
// not an error type - callers branch on it directly.
type FreshnessResult int

const (
	Fresh FreshnessResult = iota
	Stale
	LegacyFormat
	Missing
	DatasetMissing
	FreshnessError
)

func (r FreshnessResult) String() string {
	switch r {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case LegacyFormat:
		return "legacy_format"
	case Missing:
		return "missing"
	case DatasetMissing:
		return "dataset_missing"
	default:
		return "error"
	}
}

// FreshnessReport carries the result plus, for Stale, the expected and
// actual hashes for display.
type FreshnessReport struct {
	Result   FreshnessResult
	Expected [32]byte
	Actual   [32]byte
	Err      error
}

// HashDataset computes the SHA-256 of the dataset file at path.
func HashDataset(path string) ([32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// VerifyFreshness compares the SHA-256 of datasetPath against the
// source_sha256 recorded in the index at indexPath. In strict mode it
// additionally requires the recorded release tag to match
// expectedReleaseTag.
func VerifyFreshness(indexPath, datasetPath string, strict bool, expectedReleaseTag string) FreshnessReport {
	datasetHash, err := HashDataset(datasetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return FreshnessReport{Result: DatasetMissing}
		}
		return FreshnessReport{Result: FreshnessError, Err: err}
	}

	f, err := os.Open(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return FreshnessReport{Result: Missing}
		}
		return FreshnessReport{Result: FreshnessError, Err: err}
	}
	defer f.Close()

	_, meta, err := Read(f)
	if err != nil {
		if fe, ok := err.(*FormatError); ok {
			if fe.Kind == UnsupportedVersion {
				return FreshnessReport{Result: LegacyFormat}
			}
		}
		return FreshnessReport{Result: FreshnessError, Err: err}
	}

	if meta == nil {
		return FreshnessReport{Result: LegacyFormat}
	}

	if meta.SourceSHA256 != datasetHash {
		return FreshnessReport{Result: Stale, Expected: meta.SourceSHA256, Actual: datasetHash}
	}

	if strict && meta.ReleaseTag != expectedReleaseTag {
		return FreshnessReport{Result: Stale, Expected: meta.SourceSHA256, Actual: datasetHash}
	}

	return FreshnessReport{Result: Fresh}
}

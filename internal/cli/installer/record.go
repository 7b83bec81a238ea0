package installer

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/webitel/nfpm-build/internal/cli/shared"
)

// Record marks a completed tool cache entry. It is written next to the
// cache directory as <arch>.complete.
type Record struct {
	Version     string `yaml:"version"`
	SourceURL   string `yaml:"source_url"`
	BinaryHash  string `yaml:"binary_hash"`
	InstalledAt string `yaml:"installed_at"`
}

func completeMarker(dir string) string {
	return dir + ".complete"
}

// LoadRecord reads the record for dir. A missing record returns nil.
func LoadRecord(dir string) (*Record, error) {
	b, err := os.ReadFile(completeMarker(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var rec Record
	if err := yaml.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func SaveRecord(dir string, rec *Record) error {
	b, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(completeMarker(dir), b, 0o644)
}

// cached reports whether dir holds a binary matching its record.
func cached(dir string) bool {
	rec, err := LoadRecord(dir)
	if err != nil || rec == nil {
		return false
	}
	binary, err := os.ReadFile(binaryPath(dir))
	if err != nil {
		return false
	}
	return rec.BinaryHash == "sha256:"+shared.SHA256Hex(binary)
}

func newRecord(version, url string, binary []byte, now time.Time) *Record {
	return &Record{
		Version:     version,
		SourceURL:   url,
		BinaryHash:  "sha256:" + shared.SHA256Hex(binary),
		InstalledAt: now.UTC().Format(time.RFC3339),
	}
}

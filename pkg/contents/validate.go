package contents

import (
	"fmt"
	"io/fs"
	"os"
)

var allowedKinds = []Kind{KindFile, KindDir, KindConfig, KindSymlink}

// Kinds returns the accepted content types in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(allowedKinds))
	copy(out, allowedKinds)
	return out
}

// ParseKind validates a type value. Matching is case-sensitive and empty
// input selects KindFile.
func ParseKind(value string) (Kind, error) {
	if value == "" {
		return KindFile, nil
	}
	for _, k := range allowedKinds {
		if string(k) == value {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid type %q. Must be one of: %s", value, kindsList())
}

func requireEndpoints(src, dst string) bool {
	return src != "" && dst != ""
}

// StatFunc reports whether a path exists. os.Stat satisfies it.
type StatFunc func(name string) (fs.FileInfo, error)

// ValidateSources checks that every descriptor source exists before a build.
// Symlink sources name a link target inside the package and are skipped.
func ValidateSources(descriptors []Descriptor, stat StatFunc, logger Logger) error {
	if stat == nil {
		stat = os.Stat
	}
	if logger == nil {
		logger = nopLogger{}
	}
	if len(descriptors) == 0 {
		return nil
	}
	logger.Info("Validating source files...")
	for _, d := range descriptors {
		if d.Kind == KindSymlink {
			continue
		}
		if _, err := stat(d.Source); err != nil {
			return fmt.Errorf("source file not found: %s: %w", d.Source, err)
		}
		logger.Info("Found: " + d.Source)
	}
	return nil
}

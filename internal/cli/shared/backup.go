package shared

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	BackupNone      = "none"
	BackupTimestamp = "timestamp"
)

// ValidateBackupStrategy accepts "", none and timestamp.
func ValidateBackupStrategy(strategy string) error {
	switch strategy {
	case "", BackupNone, BackupTimestamp:
		return nil
	default:
		return fmt.Errorf("invalid backup strategy %q: must be %s or %s", strategy, BackupNone, BackupTimestamp)
	}
}

// BackupFile copies an existing file at path to path.<timestamp>.bak before it
// is overwritten. It returns the backup path, or "" when nothing was copied.
func BackupFile(path, strategy string, now time.Time) (string, error) {
	if strategy != BackupTimestamp {
		return "", nil
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	backupPath := fmt.Sprintf("%s.%s.bak", path, now.Format("20060102150405"))
	if err := os.WriteFile(backupPath, content, info.Mode().Perm()); err != nil {
		return "", err
	}
	return backupPath, nil
}

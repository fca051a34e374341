package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to a file name to form its backup path.
const BackupSuffix = "~"

// BackupPath returns the backup path for the given file. Symlinks are
// resolved first so the backup lands next to the real file.
func BackupPath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return path + BackupSuffix
}

// RenameBackup moves the file at path to its backup path, replacing any
// previous backup. The original path no longer exists afterwards; callers
// are expected to write the new content immediately.
func RenameBackup(path string) error {
	// A stale backup is expendable.
	_, _ = RemoveBackup(path)

	if err := os.Rename(path, BackupPath(path)); err != nil {
		return fmt.Errorf("rename to backup: %w", err)
	}
	return nil
}

// RestoreBackup moves the backup of path back into place.
// Returns false when no backup exists.
func RestoreBackup(path string) (bool, error) {
	backupPath := BackupPath(path)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat backup: %w", err)
	}
	if err := os.Rename(backupPath, path); err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}
	return true, nil
}

// RemoveBackup deletes the backup of path if present.
// Returns true when a backup was removed.
func RemoveBackup(path string) (bool, error) {
	err := os.Remove(BackupPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether a backup of path exists.
func BackupExists(path string) bool {
	_, err := os.Stat(BackupPath(path))
	return err == nil
}

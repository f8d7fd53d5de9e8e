package storage

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// maxBackupsPerFile bounds the backup rotation: the oldest backups are
// pruned once a document exceeds this many
const maxBackupsPerFile = 20

// BackupManager handles timestamped backup copies of markdown files.
// Backups live under a per-document subdirectory keyed by a hash of
// the document's absolute path, so FindBackupsForFile never has to
// open the backup contents.
type BackupManager struct {
	backupDir string
}

// NewBackupManager creates a new backup manager
func NewBackupManager() (*BackupManager, error) {
	backupDir := getBackupDir()
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &BackupManager{
		backupDir: backupDir,
	}, nil
}

// CreateBackup writes a timestamped backup of the document before
// saving, then prunes backups beyond the rotation limit
func (bm *BackupManager) CreateBackup(markdown, originalPath, sessionID string) error {
	dir := bm.dirForFile(originalPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath := filepath.Join(dir, generateBackupFilename(sessionID))
	if err := os.WriteFile(backupPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	return bm.prune(originalPath)
}

// dirForFile returns the per-document backup directory
func (bm *BackupManager) dirForFile(originalPath string) string {
	absPath, err := filepath.Abs(originalPath)
	if err != nil {
		absPath = originalPath
	}
	h := fnv.New64a()
	h.Write([]byte(filepath.Clean(absPath)))
	return filepath.Join(bm.backupDir, fmt.Sprintf("%016x", h.Sum64()))
}

// generateBackupFilename creates a filename in the format: YYYYMMDD_HHMMSS_<sessionID>.md
func generateBackupFilename(sessionID string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.md", timestamp, sessionID)
}

// getBackupDir returns the path to the backup directory
func getBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to /tmp if home directory cannot be determined
		return filepath.Join("/tmp", ".mdsurface", "backups")
	}
	return filepath.Join(homeDir, ".local", "share", "mdsurface", "backups")
}

// GetBackupDir is a public function to get the backup directory
func GetBackupDir() string {
	return getBackupDir()
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath  string    // Full path to backup file
	Timestamp time.Time // Parsed timestamp from filename
	SessionID string    // 8-character session ID
}

// FindBackupsForFile returns all backups for a document, sorted
// chronologically (oldest first)
func (bm *BackupManager) FindBackupsForFile(originalFilePath string) ([]BackupMetadata, error) {
	dir := bm.dirForFile(originalFilePath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		metadata, err := parseBackupFilename(entry.Name(), filepath.Join(dir, entry.Name()))
		if err != nil {
			continue // Skip files that can't be parsed
		}
		backups = append(backups, metadata)
	}

	sortBackupsByTimestamp(backups)
	return backups, nil
}

// prune removes the oldest backups beyond the rotation limit
func (bm *BackupManager) prune(originalFilePath string) error {
	backups, err := bm.FindBackupsForFile(originalFilePath)
	if err != nil {
		return err
	}
	for len(backups) > maxBackupsPerFile {
		if err := os.Remove(backups[0].FilePath); err != nil {
			return fmt.Errorf("failed to prune backup: %w", err)
		}
		backups = backups[1:]
	}
	return nil
}

// parseBackupFilename extracts metadata from a backup filename
// Expected format: YYYYMMDD_HHMMSS_<sessionID>.md
func parseBackupFilename(filename string, fullPath string) (BackupMetadata, error) {
	if len(filename) < 22 { // Min length for valid format
		return BackupMetadata{}, fmt.Errorf("filename too short")
	}

	// Extract timestamp: YYYYMMDD_HHMMSS (15 characters)
	timestampStr := filename[:15]

	// Extract session ID: 8 characters after the second underscore
	sessionID := filename[16 : 16+8]

	timestamp, err := time.Parse("20060102_150405", timestampStr)
	if err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid timestamp format: %w", err)
	}

	return BackupMetadata{
		FilePath:  fullPath,
		Timestamp: timestamp,
		SessionID: sessionID,
	}, nil
}

// sortBackupsByTimestamp sorts backups chronologically (oldest first)
func sortBackupsByTimestamp(backups []BackupMetadata) {
	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}

package app

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/editkit/mdsurface/internal/storage"
)

// handlePreviousBackup loads the previous backup of the current file
// into the editor. Stepping back from the live document starts at the
// most recent backup.
func (a *App) handlePreviousBackup() {
	if a.store.FilePath == "" {
		a.SetStatus("No file to find backups for")
		return
	}

	backups, err := a.backups.FindBackupsForFile(a.store.FilePath)
	if err != nil || len(backups) == 0 {
		a.SetStatus("No backups found")
		return
	}

	currentIdx := a.currentBackupIndex(backups)
	if currentIdx == -1 {
		// Not viewing a backup: start at the most recent
		a.loadBackupFile(backups[len(backups)-1])
		return
	}
	if currentIdx == 0 {
		a.SetStatus("No older backups")
		return
	}
	a.loadBackupFile(backups[currentIdx-1])
}

// handleNextBackup loads the next backup of the current file
func (a *App) handleNextBackup() {
	if a.store.FilePath == "" {
		a.SetStatus("No file to find backups for")
		return
	}

	backups, err := a.backups.FindBackupsForFile(a.store.FilePath)
	if err != nil || len(backups) == 0 {
		a.SetStatus("No backups found")
		return
	}

	currentIdx := a.currentBackupIndex(backups)
	if currentIdx == -1 {
		a.SetStatus("Not viewing a backup")
		return
	}
	if currentIdx == len(backups)-1 {
		a.SetStatus("No newer backups")
		return
	}
	a.loadBackupFile(backups[currentIdx+1])
}

func (a *App) currentBackupIndex(backups []storage.BackupMetadata) int {
	for i, b := range backups {
		if b.FilePath == a.currentBackupPath {
			return i
		}
	}
	return -1
}

// loadBackupFile replaces the document with a backup's content. The
// replacement goes through SetMarkdown, so undo returns to the state
// before the restore.
func (a *App) loadBackupFile(backup storage.BackupMetadata) {
	data, err := os.ReadFile(backup.FilePath)
	if err != nil {
		a.SetStatus(fmt.Sprintf("Failed to read backup: %v", err))
		return
	}

	a.editor.SetMarkdown(string(data))
	a.currentBackupPath = backup.FilePath
	a.setActiveBlock(0)
	a.mu.Lock()
	a.dirty = true
	a.mu.Unlock()
	a.SetStatus(fmt.Sprintf("Backup: %s (%s)", backup.Timestamp.Format("2006-01-02 15:04:05"), backup.SessionID))
}

// generateSessionID creates a random 8-character session ID for backup naming
func generateSessionID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

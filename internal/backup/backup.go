// Package backup creates timestamped copies of system files before
// enable-fn edits them, and lists the copies taken so far.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	apperrors "github.com/mzhur/enable-fn/internal/errors"
)

const timestampLayout = "20060102-150405"

// Create copies srcPath into backupDir as <basename>.<timestamp>.bak and
// returns the backup path. The backup directory is created when missing.
func Create(backupDir, srcPath string) (string, error) {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeBackup,
			fmt.Sprintf("failed to read %s", srcPath), err)
	}

	info, err := os.Stat(srcPath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeBackup,
			fmt.Sprintf("failed to stat %s", srcPath), err)
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeBackup,
			fmt.Sprintf("failed to create backup directory %s", backupDir), err)
	}

	name := fmt.Sprintf("%s.%s.bak", filepath.Base(srcPath), time.Now().Format(timestampLayout))
	dst := filepath.Join(backupDir, name)

	// A second edit within the same second must not clobber the first copy.
	for i := 1; ; i++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			break
		}
		dst = filepath.Join(backupDir, fmt.Sprintf("%s.%d", name, i))
	}

	if err := os.WriteFile(dst, content, info.Mode().Perm()); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeBackup,
			fmt.Sprintf("failed to write backup %s", dst), err)
	}

	return dst, nil
}

// Entry describes a single backup file.
type Entry struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Describe renders the entry with a human-readable size and age.
func (e *Entry) Describe() string {
	return fmt.Sprintf("%s  %s  %s",
		filepath.Base(e.Path), humanize.Bytes(uint64(e.Size)), humanize.Time(e.ModTime))
}

// List returns the backups in backupDir, newest first. A missing directory
// yields an empty list.
func List(backupDir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeBackup,
			fmt.Sprintf("failed to read backup directory %s", backupDir), err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.Contains(de.Name(), ".bak") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(backupDir, de.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})

	return entries, nil
}

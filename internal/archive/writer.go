// SPDX-License-Identifier: MPL-2.0

// Package archive writes packaged archives. It is a collaborator of the
// packaging task: the task decides which entries ship, this package only
// composes them into a zip-format container at a destination path.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
)

type (
	// Entry maps a file on disk to its path inside the archive. ArchivePath
	// uses forward slashes regardless of host platform.
	Entry struct {
		// SourcePath is the file to read, absolute or relative to the
		// working directory.
		SourcePath string
		// ArchivePath is the destination path inside the archive.
		ArchivePath string
	}

	// Writer materializes a set of entries into an archive file. The
	// packaging task invokes it exactly once per execution.
	Writer interface {
		Write(entries []Entry, destination string) error
	}

	// ZipWriter is the standard Writer backed by archive/zip.
	ZipWriter struct{}
)

// Write creates destination and streams every entry into it. Entries are
// written in archive-path order so repeated runs over the same inputs
// produce identical layouts.
func (ZipWriter) Write(entries []Entry, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	zipFile, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ArchivePath < sorted[j].ArchivePath
	})

	for _, entry := range sorted {
		if err := writeEntry(zipWriter, entry); err != nil {
			return err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	log.Debug("archive written", "destination", destination, "entries", len(sorted))
	return nil
}

func writeEntry(zipWriter *zip.Writer, entry Entry) error {
	src, err := os.Open(entry.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to read entry %s: %w", entry.ArchivePath, err)
	}
	defer src.Close()

	w, err := zipWriter.Create(entry.ArchivePath)
	if err != nil {
		return fmt.Errorf("failed to create entry %s: %w", entry.ArchivePath, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", entry.ArchivePath, err)
	}
	return nil
}

// DirEntries walks root and returns one Entry per regular file, with archive
// paths relative to root in forward-slash form. The listing reflects the
// directory's state at call time; callers that need execution-time freshness
// simply call it at execution time.
func DirEntries(root string) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		entries = append(entries, Entry{
			SourcePath:  path,
			ArchivePath: filepath.ToSlash(relPath),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	return entries, nil
}

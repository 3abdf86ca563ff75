// Package storage defines the vault file-system abstraction.
package storage

import "github.com/moonkyu/haru/internal/models"

// Provider is the interface for vault file operations. Paths are always
// relative to the vault root; reads and writes are whole-file only.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to vault root).
	List(dir string) ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
}

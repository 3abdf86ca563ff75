// Package models defines the domain types shared across haru.
package models

import "time"

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagCount is one entry of the frequency-sorted tag listing.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// RecentNote is a summary of one recent daily note.
type RecentNote struct {
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
	Preview string   `json:"preview"`
}

// Package core holds the note domain: entities, the storage contract and the service.
package core

import "time"

// Note is the central entity of the domain.
// It is a single titled entry with a set of tags and an optional description.
type Note struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Tags        []string   `json:"tags"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// HasTag reports whether the note carries the given tag.
func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Equal reports whether two notes hold the same data.
func (n Note) Equal(o Note) bool {
	if n.ID != o.ID || n.Title != o.Title || n.Description != o.Description {
		return false
	}
	if !n.CreatedAt.Equal(o.CreatedAt) {
		return false
	}
	if (n.UpdatedAt == nil) != (o.UpdatedAt == nil) {
		return false
	}
	if n.UpdatedAt != nil && !n.UpdatedAt.Equal(*o.UpdatedAt) {
		return false
	}
	if len(n.Tags) != len(o.Tags) {
		return false
	}
	for i := range n.Tags {
		if n.Tags[i] != o.Tags[i] {
			return false
		}
	}
	return true
}

// NotePatch lists the fields an update may change.
// Nil pointers and empty slices leave the note untouched.
type NotePatch struct {
	Title       *string
	Description *string
	// Tags replaces the whole tag set. It is applied before AddTags and RemoveTags.
	Tags       *[]string
	AddTags    []string
	RemoveTags []string
}

// IsEmpty reports whether the patch changes nothing.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Tags == nil &&
		len(p.AddTags) == 0 && len(p.RemoveTags) == 0
}

// EventType represents the type of change observed in the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a single note.
type Event struct {
	Type      EventType
	ID        string
	Title     string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	if e.Title == "" {
		return string(e.Type) + " " + e.ID
	}
	return string(e.Type) + " " + e.ID + " " + e.Title
}

package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// SchemaVersion is the version of the persisted collection layout.
const SchemaVersion = 1

// Collection is the in-memory set of notes keyed by ID.
// It remembers insertion order and never hands out the same ID twice.
type Collection struct {
	Version int
	NextID  int

	notes map[string]Note
	order []string
}

// TagCount pairs a tag with the number of notes carrying it.
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// NewCollection returns an empty collection at the current schema version.
func NewCollection() *Collection {
	return &Collection{
		Version: SchemaVersion,
		NextID:  1,
		notes:   make(map[string]Note),
		order:   []string{},
	}
}

// Len returns the number of notes.
func (c *Collection) Len() int {
	return len(c.order)
}

// Insert places an existing note (one that already has an ID) at the end of the collection.
// It is used when rebuilding a collection from storage.
func (c *Collection) Insert(n Note) error {
	if n.ID == "" {
		return fmt.Errorf("%w: note has no ID", ErrInvalidNote)
	}
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: note %s has no title", ErrInvalidNote, n.ID)
	}
	if _, exists := c.notes[n.ID]; exists {
		return fmt.Errorf("%w: duplicate ID %s", ErrInvalidNote, n.ID)
	}
	if err := checkText(n.Title, n.Description, n.Tags); err != nil {
		return err
	}

	seq, err := strconv.Atoi(n.ID)
	if errors.Is(err, strconv.ErrRange) || (err == nil && seq == math.MaxInt) {
		return fmt.Errorf("%w: ID %s is out of range", ErrInvalidNote, n.ID)
	}

	n.Tags = NormalizeTags(n.Tags)
	c.notes[n.ID] = n
	c.order = append(c.order, n.ID)

	if err == nil && seq >= c.NextID {
		c.NextID = seq + 1
	}
	return nil
}

// Add creates a note with a fresh ID and appends it.
func (c *Collection) Add(title string, tags []string, description string, now time.Time) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Note{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidNote)
	}
	if err := checkText(title, description, tags); err != nil {
		return Note{}, err
	}

	id, err := c.nextFreeID()
	if err != nil {
		return Note{}, err
	}
	n := Note{
		ID:          id,
		Title:       title,
		Tags:        NormalizeTags(tags),
		Description: strings.TrimSpace(description),
		CreatedAt:   stamp(now),
	}
	c.notes[id] = n
	c.order = append(c.order, id)
	return cloneNote(n), nil
}

// nextFreeID advances the counter past any ID already taken by a hand-edited file.
func (c *Collection) nextFreeID() (string, error) {
	if c.NextID < 1 {
		c.NextID = 1
	}
	for {
		if c.NextID == math.MaxInt {
			return "", fmt.Errorf("%w: note IDs exhausted", ErrCorruptData)
		}
		id := strconv.Itoa(c.NextID)
		c.NextID++
		if _, taken := c.notes[id]; !taken {
			return id, nil
		}
	}
}

// Get returns the note with the given ID.
func (c *Collection) Get(id string) (Note, error) {
	n, ok := c.notes[id]
	if !ok {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneNote(n), nil
}

// Update applies the patch to the note with the given ID and returns the result.
func (c *Collection) Update(id string, patch NotePatch, now time.Time) (Note, error) {
	n, ok := c.notes[id]
	if !ok {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if patch.IsEmpty() {
		return Note{}, fmt.Errorf("%w: nothing to update", ErrInvalidNote)
	}
	if err := checkPatch(patch); err != nil {
		return Note{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return Note{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidNote)
		}
		n.Title = title
	}
	if patch.Description != nil {
		n.Description = strings.TrimSpace(*patch.Description)
	}

	tags := n.Tags
	if patch.Tags != nil {
		tags = *patch.Tags
	}
	tags = append(append([]string{}, tags...), patch.AddTags...)
	if len(patch.RemoveTags) > 0 {
		drop := make(map[string]bool, len(patch.RemoveTags))
		for _, t := range patch.RemoveTags {
			drop[strings.TrimSpace(t)] = true
		}
		kept := tags[:0]
		for _, t := range tags {
			if !drop[strings.TrimSpace(t)] {
				kept = append(kept, t)
			}
		}
		tags = kept
	}
	n.Tags = NormalizeTags(tags)

	updated := stamp(now)
	n.UpdatedAt = &updated

	c.notes[id] = n
	return cloneNote(n), nil
}

// Delete removes the note with the given ID.
func (c *Collection) Delete(id string) error {
	if _, ok := c.notes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(c.notes, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns every note in insertion order.
func (c *Collection) All() []Note {
	return c.filter(func(Note) bool { return true })
}

// ListByTag returns the notes carrying tag, in insertion order.
// An empty tag matches every note.
func (c *Collection) ListByTag(tag string) []Note {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return c.All()
	}
	return c.filter(func(n Note) bool { return n.HasTag(tag) })
}

// MatchTags returns the notes with at least one tag matching the glob pattern
// (e.g. "work/*" or "project/**"), in insertion order.
func (c *Collection) MatchTags(pattern string) ([]Note, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	return c.filter(func(n Note) bool {
		for _, t := range n.Tags {
			if ok, _ := doublestar.Match(pattern, t); ok {
				return true
			}
		}
		return false
	}), nil
}

// Tags returns every tag in use with its note count, sorted by tag.
func (c *Collection) Tags() []TagCount {
	counts := make(map[string]int)
	for _, id := range c.order {
		for _, t := range c.notes[id].Tags {
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TagCount{Tag: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

func (c *Collection) filter(keep func(Note) bool) []Note {
	out := make([]Note, 0, len(c.order))
	for _, id := range c.order {
		n := c.notes[id]
		if keep(n) {
			out = append(out, cloneNote(n))
		}
	}
	return out
}

// NormalizeTags trims, de-duplicates and sorts tags. Empty tags are dropped.
// The result is never nil.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// checkText rejects note text that is not valid UTF-8, which JSON cannot store unchanged.
func checkText(title, description string, tags []string) error {
	if !utf8.ValidString(title) {
		return fmt.Errorf("%w: title is not valid UTF-8", ErrInvalidNote)
	}
	if !utf8.ValidString(description) {
		return fmt.Errorf("%w: description is not valid UTF-8", ErrInvalidNote)
	}
	for _, t := range tags {
		if !utf8.ValidString(t) {
			return fmt.Errorf("%w: tag %q is not valid UTF-8", ErrInvalidNote, t)
		}
	}
	return nil
}

func checkPatch(p NotePatch) error {
	var title, description string
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description != nil {
		description = *p.Description
	}
	tags := p.AddTags
	if p.Tags != nil {
		tags = append(append([]string{}, *p.Tags...), p.AddTags...)
	}
	return checkText(title, description, tags)
}

// stamp drops the monotonic reading and sub-second noise so timestamps survive a JSON round trip unchanged.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func cloneNote(n Note) Note {
	n.Tags = append([]string{}, n.Tags...)
	if n.UpdatedAt != nil {
		u := *n.UpdatedAt
		n.UpdatedAt = &u
	}
	return n
}

package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/dictnotes/pkg/core"
)

// Serializer defines how to read and write the collection in a specific file format.
type Serializer interface {
	// Parse reads from r and rebuilds the collection.
	Parse(r io.Reader) (*core.Collection, error)
	// Serialize converts the collection to bytes.
	Serialize(c *core.Collection) ([]byte, error)
	// Name identifies the format (e.g. "json").
	Name() string
}

// DefaultSerializers returns the standard set of serializers keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// SerializerFor picks the serializer matching the file extension, defaulting to JSON.
func SerializerFor(path string) Serializer {
	if s, ok := DefaultSerializers()[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return NewJSONSerializer()
}

// fileDocument is the on-disk layout shared by every format.
type fileDocument struct {
	Version int                 `json:"version" yaml:"version"`
	NextID  int                 `json:"next_id" yaml:"next_id"`
	Notes   map[string]fileNote `json:"notes" yaml:"notes"`
}

type fileNote struct {
	Title       string     `json:"title" yaml:"title"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

func toDocument(c *core.Collection) fileDocument {
	doc := fileDocument{
		Version: c.Version,
		NextID:  c.NextID,
		Notes:   make(map[string]fileNote, c.Len()),
	}
	if doc.Version == 0 {
		doc.Version = core.SchemaVersion
	}
	for _, n := range c.All() {
		doc.Notes[n.ID] = fileNote{
			Title:       n.Title,
			Tags:        n.Tags,
			Description: n.Description,
			CreatedAt:   n.CreatedAt,
			UpdatedAt:   n.UpdatedAt,
		}
	}
	return doc
}

// fromDocument validates doc and rebuilds the collection in insertion order.
func fromDocument(doc fileDocument) (*core.Collection, error) {
	switch {
	case doc.Version == 0:
		// Files written before versioning carry no version field.
		doc.Version = core.SchemaVersion
	case doc.Version < 0 || doc.Version > core.SchemaVersion:
		return nil, fmt.Errorf("unsupported version %d", doc.Version)
	}

	ids := make([]string, 0, len(doc.Notes))
	for id := range doc.Notes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return insertedBefore(ids[i], doc.Notes[ids[i]], ids[j], doc.Notes[ids[j]])
	})

	c := core.NewCollection()
	c.Version = doc.Version
	for _, id := range ids {
		fn := doc.Notes[id]
		n := core.Note{
			ID:          id,
			Title:       fn.Title,
			Tags:        fn.Tags,
			Description: fn.Description,
			CreatedAt:   fn.CreatedAt.UTC(),
		}
		if fn.UpdatedAt != nil {
			u := fn.UpdatedAt.UTC()
			n.UpdatedAt = &u
		}
		if err := c.Insert(n); err != nil {
			return nil, fmt.Errorf("entry %q: %v", id, err)
		}
	}

	if doc.NextID == math.MaxInt {
		return nil, fmt.Errorf("next_id %d is out of range", doc.NextID)
	}

	// Insert already advanced the counter past every numeric ID; a larger stored value wins.
	if doc.NextID > c.NextID {
		c.NextID = doc.NextID
	}
	return c, nil
}

// insertedBefore orders numeric IDs by value, then the rest by creation time and ID.
func insertedBefore(idA string, a fileNote, idB string, b fileNote) bool {
	seqA, errA := strconv.Atoi(idA)
	seqB, errB := strconv.Atoi(idB)
	switch {
	case errA == nil && errB == nil:
		if seqA != seqB {
			return seqA < seqB
		}
		return idA < idB
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return idA < idB
}

// --- JSON Serializer ---

// JSONSerializer handles the default JSON data file.
type JSONSerializer struct {
	Indent string
}

// NewJSONSerializer creates a new JSON serializer with two-space indentation.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{Indent: "  "}
}

func (s *JSONSerializer) Name() string { return "json" }

func (s *JSONSerializer) Parse(r io.Reader) (*core.Collection, error) {
	var doc fileDocument
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}
	return fromDocument(doc)
}

func (s *JSONSerializer) Serialize(c *core.Collection) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", s.Indent)
	if err := encoder.Encode(toDocument(c)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles data files with a .yaml or .yml extension.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Name() string { return "yaml" }

func (s *YAMLSerializer) Parse(r io.Reader) (*core.Collection, error) {
	var doc fileDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	return fromDocument(doc)
}

func (s *YAMLSerializer) Serialize(c *core.Collection) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toDocument(c)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/dictnotes/pkg/core"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(f string) bool {
	switch f {
	case formatText, formatJSON, formatYAML:
		return true
	}
	return false
}

// noteView is the machine-readable shape of a note.
type noteView struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Tags        []string   `json:"tags" yaml:"tags"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

func viewOf(n core.Note) noteView {
	return noteView{
		ID:          n.ID,
		Title:       n.Title,
		Tags:        n.Tags,
		Description: n.Description,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML writes a value as YAML.
func outputYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// outputStructured writes v in a machine format; ok is false for text.
func outputStructured(w io.Writer, format string, v any) (ok bool, err error) {
	switch format {
	case formatJSON:
		return true, outputJSON(w, v)
	case formatYAML:
		return true, outputYAML(w, v)
	}
	return false, nil
}

// printNote writes one note in the requested format.
func printNote(w io.Writer, format string, n core.Note) error {
	if ok, err := outputStructured(w, format, viewOf(n)); ok {
		return err
	}

	fmt.Fprintf(w, "ID:          %s\n", n.ID)
	fmt.Fprintf(w, "Title:       %s\n", n.Title)
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "Tags:        %s\n", strings.Join(n.Tags, ", "))
	}
	if n.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", n.Description)
	}
	fmt.Fprintf(w, "Created:     %s\n", n.CreatedAt.Format(time.RFC3339))
	if n.UpdatedAt != nil {
		fmt.Fprintf(w, "Updated:     %s\n", n.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

// printNotes writes a list of notes, one line each in text mode.
func printNotes(w io.Writer, format string, notes []core.Note) error {
	views := make([]noteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, viewOf(n))
	}
	if ok, err := outputStructured(w, format, views); ok {
		return err
	}

	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return nil
	}
	for _, n := range notes {
		fmt.Fprintln(w, noteLine(n))
	}
	return nil
}

// noteLine formats a note as "ID - Title [tag, tag]".
func noteLine(n core.Note) string {
	line := fmt.Sprintf("%s - %s", n.ID, n.Title)
	if len(n.Tags) > 0 {
		line += fmt.Sprintf(" [%s]", strings.Join(n.Tags, ", "))
	}
	return line
}

// outputJSONCompact writes a value as compact JSON.
func outputJSONCompact(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

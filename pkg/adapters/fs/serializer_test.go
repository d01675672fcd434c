package fs_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dictnotes/pkg/adapters/fs"
	"github.com/aretw0/dictnotes/pkg/core"
)

func TestSerializerFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notes.json", "json"},
		{"notes.JSON", "json"},
		{"notes.yaml", "yaml"},
		{"notes.yml", "yaml"},
		{"notes", "json"},
		{"notes.txt", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, fs.SerializerFor(tt.path).Name())
		})
	}
}

func TestJSONSerializer_LegacyWithoutVersion(t *testing.T) {
	s := fs.NewJSONSerializer()
	c, err := s.Parse(strings.NewReader(`{"notes": {"1": {"title": "old", "tags": ["a"], "created_at": "2020-01-01T00:00:00Z"}}}`))
	require.NoError(t, err)

	assert.Equal(t, core.SchemaVersion, c.Version)
	n, err := c.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "old", n.Title)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), n.CreatedAt)
}

func TestJSONSerializer_NormalizesOffsets(t *testing.T) {
	s := fs.NewJSONSerializer()
	c, err := s.Parse(strings.NewReader(`{"version": 1, "notes": {"1": {"title": "tz", "created_at": "2026-03-01T10:00:00+02:00"}}}`))
	require.NoError(t, err)

	n, err := c.Get("1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), n.CreatedAt)
}

func TestYAMLSerializer_Output(t *testing.T) {
	c := core.NewCollection()
	_, err := c.Add("Buy milk", []string{"errand"}, "two litres", time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	out, err := fs.NewYAMLSerializer().Serialize(c)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "version: 1")
	assert.Contains(t, text, "next_id: 2")
	assert.Contains(t, text, "title: Buy milk")
	assert.Contains(t, text, "description: two litres")
}

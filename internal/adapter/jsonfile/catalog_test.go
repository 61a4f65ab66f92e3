package jsonfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	path := writeFile(t, "activities.json", `{
		"Robotics": {"description": "Build robots", "schedule": "Mondays", "max_participants": 8, "participants": ["ada@mergington.edu"]},
		"Choir": {"description": "Sing", "schedule": "Fridays", "max_participants": 40, "participants": []}
	}`)

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Robotics", "Choir"}, c.Names())
	robotics, _ := c.Get("Robotics")
	assert.Equal(t, 8, robotics.MaxParticipants)
	assert.Equal(t, []string{"ada@mergington.edu"}, robotics.Participants)
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }, "failed to read activities file"},
		{"malformed", func(t *testing.T) string { return writeFile(t, "a.json", `{"A": [}`) }, "failed to parse activities file"},
		{"empty", func(t *testing.T) string { return writeFile(t, "a.json", `{}`) }, "defines no activities"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

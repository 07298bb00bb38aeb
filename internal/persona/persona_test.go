package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "persona.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	p := Default()

	assert.NotEmpty(t, p.Name)
	assert.NotEmpty(t, p.Title)
	assert.NotEmpty(t, p.Contact.Email)
	assert.NotEmpty(t, p.Greeting)
	assert.NotEmpty(t, p.TechStack)
}

func TestLoadFile(t *testing.T) {
	path := writeProfile(t, `{
		"name": "Ada Example",
		"title": "Engineer",
		"location": "Somewhere",
		"contact": {"email": "ada@example.com"},
		"techStack": {"Languages": ["Go"]}
	}`)

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada Example", p.Name)
	assert.Equal(t, []string{"Go"}, p.TechStack["Languages"])
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := LoadFile(writeProfile(t, "{not json"))
		assert.Error(t, err)
	})

	t.Run("name required", func(t *testing.T) {
		_, err := LoadFile(writeProfile(t, `{"title": "Engineer"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Name, p.Name)
}

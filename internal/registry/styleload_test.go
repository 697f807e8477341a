package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStyleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "styles.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeStyleFile(t, `
warning:
  color: "#b91c1c"
  font-weight: bold
muted:
  color: "#6b7280"
`)

	s := NewStyleRegistry()
	n, err := s.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"muted", "warning"}, s.Names(), "sets register in name order")
	assert.Equal(t, "bold", s.Styles()["warning"]["font-weight"])
}

func TestLoadFile_MissingFile(t *testing.T) {
	s := NewStyleRegistry()
	_, err := s.LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadFile_MalformedYAML(t *testing.T) {
	path := writeStyleFile(t, "warning: [not, a, mapping]")
	s := NewStyleRegistry()
	_, err := s.LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_RejectsInvalidSet(t *testing.T) {
	path := writeStyleFile(t, `
empty: {}
ok:
  color: red
`)
	s := NewStyleRegistry()
	n, err := s.LoadFile(path)
	assert.Error(t, err)
	assert.Equal(t, 0, n, "the empty set sorts first and stops the load")
	assert.Empty(t, s.Names())
}

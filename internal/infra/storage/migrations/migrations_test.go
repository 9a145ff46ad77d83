package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		content, err := fs.ReadFile(FS, name)
		require.NoError(t, err)

		text := string(content)
		assert.True(t, strings.Contains(text, "-- +goose Up"), "%s has no Up section", name)
		assert.True(t, strings.Contains(text, "-- +goose Down"), "%s has no Down section", name)
	}
}

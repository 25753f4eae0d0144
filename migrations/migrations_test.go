package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups[strings.TrimSuffix(f, ".up.sql")] = true
		case strings.HasSuffix(f, ".down.sql"):
			downs[strings.TrimSuffix(f, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %s", f)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestProfilesSchemaHasMatchColumns(t *testing.T) {
	b, err := fs.ReadFile(FS, "000002_create_profiles.up.sql")
	require.NoError(t, err)

	schema := string(b)
	for _, col := range []string{"gender", "date_of_birth", "height_cm", "marital_status", "partner_min_age", "created_at"} {
		assert.Contains(t, schema, col)
	}
}

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/anyfix/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuiltin tests the shape of the built-in catalog.
func TestBuiltin(t *testing.T) {
	t.Parallel()

	t.Run("has 28 fixes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 28, Builtin().Len())
	})

	t.Run("starts with the bookings dashboard", func(t *testing.T) {
		t.Parallel()

		first := Builtin().Records()[0]
		assert.Equal(t, "apps/web/src/app/dashboard/bookings/page.tsx", first.File)
		assert.Equal(t, 18, first.Line)
	})

	t.Run("is stable across calls", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Builtin().Records(), Builtin().Records())
		assert.Equal(t, Builtin().Digest(), Builtin().Digest())
	})

	t.Run("every record is valid and changes something", func(t *testing.T) {
		t.Parallel()

		for i, r := range Builtin().Records() {
			require.NoError(t, r.Validate(), "record %d", i)
			assert.NotEqual(t, r.Before, r.After, "record %d (%s) is a no-op", i, r.Location())
			assert.Contains(t, r.Before, "any", "record %d (%s)", i, r.Location())
		}
	})

	t.Run("keeps the multi-line home page fix intact", func(t *testing.T) {
		t.Parallel()

		var found bool
		for _, r := range Builtin().ByFile("apps/web/src/app/page.tsx") {
			if r.Line == 114 {
				found = true
				assert.Equal(t, []string{
					"        const categoryTrips = allTrips.filter(",
					"          (t: any) =>",
				}, r.BeforeLines())
			}
		}
		assert.True(t, found, "expected page.tsx:114")
	})

	t.Run("groups records by file", func(t *testing.T) {
		t.Parallel()

		// Each file appears as one contiguous run.
		seen := map[string]bool{}
		prev := ""
		for _, r := range Builtin().Records() {
			if r.File != prev {
				assert.False(t, seen[r.File], "%s appears in more than one group", r.File)
				seen[r.File] = true
				prev = r.File
			}
		}
		assert.Len(t, Builtin().Files(), len(seen))
	})

	t.Run("mutating a returned catalog does not leak", func(t *testing.T) {
		t.Parallel()

		records := Builtin().Records()
		records[0].Line = 999
		assert.Equal(t, 18, Builtin().Records()[0].Line)
	})
}

// TestParse tests decoding of YAML catalog documents.
func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parses records in order", func(t *testing.T) {
		t.Parallel()

		data := []byte(`fixes:
  - file: b.ts
    line: 2
    before: "const x: any = 1;"
    after: "const x: number = 1;"
  - file: a.ts
    line: 1
    before: |-
      foo(
        (t: any) =>
    after: |-
      foo(
        (t: Trip) =>
`)
		c, err := Parse(data)
		require.NoError(t, err)
		require.Equal(t, 2, c.Len())
		assert.Equal(t, "b.ts", c.Records()[0].File)
		assert.Equal(t, "foo(\n  (t: any) =>", c.Records()[1].Before)
	})

	t.Run("empty document is an empty catalog", func(t *testing.T) {
		t.Parallel()

		c, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		_, err := Parse([]byte("fixes:\n  - file: a.ts\n    lines: 3\n"))
		assert.Error(t, err)
	})

	t.Run("reports the position of an invalid record", func(t *testing.T) {
		t.Parallel()

		data := []byte(`fixes:
  - {file: a.ts, line: 1, before: x, after: y}
  - {file: a.ts, line: 0, before: x, after: y}
`)
		_, err := Parse(data)

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 1, verr.Index)
		assert.ErrorIs(t, err, model.ErrInvalidLine)
	})
}

// TestLoadFile tests reading catalogs from disk.
func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrCatalogNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.True(t, errors.Is(err, ErrCatalogNotFound), "got %v", err)
	})

	t.Run("error mentions the path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fixes: [{file: a.ts}]\n"), 0600))

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
		assert.ErrorIs(t, err, model.ErrInvalidLine)
	})

	t.Run("round-trips the built-in catalog", func(t *testing.T) {
		t.Parallel()

		data, err := Marshal(Builtin())
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, data, 0600))

		loaded, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, Builtin().Records(), loaded.Records())
		assert.Equal(t, Builtin().Digest(), loaded.Digest())
	})
}

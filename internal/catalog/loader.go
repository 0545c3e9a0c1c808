package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/anyfix/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrCatalogNotFound is returned when the catalog file does not exist.
var ErrCatalogNotFound = errors.New("catalog file not found")

// File is the on-disk shape of a catalog file.
type File struct {
	// Fixes are the catalog records in presentation order.
	Fixes []model.FixRecord `yaml:"fixes"`
}

// LoadFile reads and validates a YAML catalog file.
// If the file does not exist, it returns ErrCatalogNotFound.
func LoadFile(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided catalog path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, err
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog and validates every record.
// Unknown keys are rejected so that a misspelled field does not silently
// produce an empty value.
func Parse(data []byte) (*model.Catalog, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return model.NewCatalog(f.Fixes)
}

// Marshal encodes a catalog in the catalog file format.
func Marshal(c *model.Catalog) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(File{Fixes: c.Records()}); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed data/clearingnummer.csv
var defaultTable []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := ParseCSV(bytes.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded table: %v", err))
	}
	return c
})

// Default returns the catalog built from the embedded reference table.
// The same instance is returned on every call.
func Default() *Catalog {
	return defaultCatalog()
}

// Binary catalogs use this extension; everything else is read as CSV.
const BinaryExt = ".msgpack"

// LoadFile reads a catalog from path, choosing the binary reader for files
// ending in BinaryExt and the CSV reader otherwise.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), BinaryExt) {
		return ReadBinary(f)
	}
	return ParseCSV(f, opts...)
}

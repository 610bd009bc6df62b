package catalog

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// binaryFormat is bumped whenever the Record layout changes incompatibly.
const binaryFormat = 1

type binaryCatalog struct {
	Format  int      `msgpack:"format"`
	Records []Record `msgpack:"records"`
}

// WriteBinary encodes the catalog as msgpack.
func WriteBinary(w io.Writer, c *Catalog) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(binaryCatalog{Format: binaryFormat, Records: c.Records()}); err != nil {
		return fmt.Errorf("catalog: encode binary: %w", err)
	}
	return nil
}

// ReadBinary decodes a catalog written by WriteBinary.
func ReadBinary(r io.Reader) (*Catalog, error) {
	var bc binaryCatalog
	if err := msgpack.NewDecoder(r).Decode(&bc); err != nil {
		return nil, fmt.Errorf("catalog: decode binary: %w", err)
	}
	if bc.Format != binaryFormat {
		return nil, fmt.Errorf("catalog: unsupported binary format %d", bc.Format)
	}
	c, err := FromRecords(bc.Records)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Package catalog loads and indexes building-material product records.
//
// A catalog is an immutable in-memory snapshot of one or more JSON feeds.
// The decoder insists on an array root and object records but makes no
// further schema demands; scoring tolerates whatever fields a vendor
// ships. Paths ending in .gz are transparently (de)compressed.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"ecorank/internal/errors"
	"ecorank/internal/scoring"
)

// Catalog is an immutable product list. Safe for concurrent readers;
// reloads build a fresh Catalog rather than mutating one in place.
type Catalog struct {
	products []scoring.Product
}

// New wraps an already-decoded product list.
func New(products []scoring.Product) *Catalog {
	return &Catalog{products: products}
}

// Load reads one catalog file. A .gz suffix selects gzip decompression.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.CatalogUnreadable, fmt.Sprintf("opening catalog %s", path), err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(errors.CatalogUnreadable, fmt.Sprintf("decompressing catalog %s", path), err)
		}
		defer zr.Close()
		r = zr
	}
	return LoadReader(r)
}

// LoadAll concatenates several catalog files in order into one snapshot.
func LoadAll(paths ...string) (*Catalog, error) {
	var products []scoring.Product
	for _, path := range paths {
		c, err := Load(path)
		if err != nil {
			return nil, err
		}
		products = append(products, c.products...)
	}
	return New(products), nil
}

// LoadReader decodes a JSON product array from r. The root must be an
// array and every record an object; anything else is a coded error.
// Records are decoded streamily, so large catalogs never need a second
// in-memory copy.
func LoadReader(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(errors.CatalogUnreadable, "decoding catalog", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.New(errors.CatalogInvalid, "catalog root must be a JSON array")
	}

	var products []scoring.Product
	for dec.More() {
		var p scoring.Product
		if err := dec.Decode(&p); err != nil {
			return nil, errors.Wrap(errors.CatalogInvalid,
				fmt.Sprintf("catalog record %d is not an object", len(products)), err)
		}
		products = append(products, p)
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(errors.CatalogUnreadable, "decoding catalog", err)
	}
	return New(products), nil
}

// Write serializes products as indented JSON to path, gzip-compressed
// when the path ends in .gz. Non-ASCII text is written verbatim.
func Write(path string, products []scoring.Product) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(products); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return f.Close()
}

// Products returns the underlying slice. Callers must not mutate it.
func (c *Catalog) Products() []scoring.Product {
	return c.products
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.products)
}

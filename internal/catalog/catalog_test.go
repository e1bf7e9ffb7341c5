package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"

	"ecorank/internal/errors"
	"ecorank/internal/scoring"
)

func TestLoadReader(t *testing.T) {
	input := `[
		{"id": 1, "product_name": "EcoPanel", "recycled_content_percentage": "76"},
		{"id": 2, "product_name": "GreenBoard"}
	]`
	c, err := LoadReader(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadReader() error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if got := c.Products()[0]["product_name"]; got != "EcoPanel" {
		t.Errorf("first product_name = %v, want EcoPanel", got)
	}
}

func TestLoadReaderEmptyArray(t *testing.T) {
	c, err := LoadReader(strings.NewReader("[]"))
	if err != nil {
		t.Fatalf("LoadReader() error: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLoadReaderRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{"object root", `{"products": []}`, errors.CatalogInvalid},
		{"scalar root", `42`, errors.CatalogInvalid},
		{"non-object record", `[1, 2]`, errors.CatalogInvalid},
		{"not json", `not json at all`, errors.CatalogUnreadable},
		{"empty input", ``, errors.CatalogUnreadable},
		{"truncated array", `[{"id": 1}`, errors.CatalogUnreadable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("LoadReader() succeeded, want error")
			}
			if got := errors.CodeOf(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Load() succeeded, want error")
	}
	if got := errors.CodeOf(err); got != errors.CatalogUnreadable {
		t.Errorf("code = %s, want %s", got, errors.CatalogUnreadable)
	}
}

func TestLoadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(`[{"id": 7, "product_name": "Compressed"}]`)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Len() != 1 || c.Products()[0]["product_name"] != "Compressed" {
		t.Errorf("unexpected catalog contents: %v", c.Products())
	}
}

func TestWriteRoundTrip(t *testing.T) {
	products := []scoring.Product{
		{"id": 1.0, "product_name": "GreenTag – Green Rate sample"},
		{"id": 2.0, "product_name": "Plain"},
	}

	for _, name := range []string{"out.json", "out.json.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Write(path, products); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			c, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if c.Len() != 2 {
				t.Fatalf("Len() = %d, want 2", c.Len())
			}
			if got := c.Products()[0]["product_name"]; got != "GreenTag – Green Rate sample" {
				t.Errorf("product_name = %v", got)
			}
		})
	}
}

func TestWriteKeepsUnicodeVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	err := Write(path, []scoring.Product{{"product_name": "GreenTag – Health Rate"}})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "GreenTag – Health Rate") {
		t.Errorf("en dash was escaped: %s", raw)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")
	if err := os.WriteFile(first, []byte(`[{"id": 1}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(`[{"id": 2}, {"id": 3}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadAll(first, second)
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if got, _ := productID(c.Products()[0]); got != 1 {
		t.Errorf("first record id = %d, want 1 (feed order preserved)", got)
	}

	if _, err := LoadAll(first, filepath.Join(dir, "absent.json")); err == nil {
		t.Error("LoadAll() with missing feed succeeded, want error")
	}
}

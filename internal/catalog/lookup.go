package catalog

import (
	"sort"
	"strconv"
	"strings"

	"ecorank/internal/scoring"
)

// DefaultMediaBaseURL resolves relative image paths when no media base is
// configured. It points at the public bucket the source feeds reference.
const DefaultMediaBaseURL = "https://architectsdeclareapp.s3.amazonaws.com/media/"

// Categories returns the sorted distinct category names across the
// catalog, read from each record's product_categories entries.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	for _, p := range c.products {
		for _, name := range CategoryNames(p) {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FindByID returns the first record whose id field coerces to id.
// Records without a coercible id are skipped, never matched.
func (c *Catalog) FindByID(id int) (scoring.Product, bool) {
	for _, p := range c.products {
		if pid, ok := productID(p); ok && pid == id {
			return p, true
		}
	}
	return nil, false
}

// productID coerces the id field to an int the way the feeds encode it:
// JSON numbers (truncated), integer strings, nothing else.
func productID(p scoring.Product) (int, bool) {
	switch v := p["id"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// CategoryNames returns the record's category names in feed order,
// skipping entries without a non-empty category_name.
func CategoryNames(p scoring.Product) []string {
	list, ok := p["product_categories"].([]any)
	if !ok {
		return nil
	}
	var names []string
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := entry["category_name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ProductName returns a display name for a record: product_name, falling
// back to product_code, falling back to the id.
func ProductName(p scoring.Product) string {
	for _, key := range []string{"product_name", "product_code"} {
		if s, ok := p[key].(string); ok && s != "" {
			return s
		}
	}
	switch v := p["id"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return ""
}

// imageCandidateKeys are checked in order before the images list.
var imageCandidateKeys = []string{
	"image",
	"cover_image",
	"thumbnail",
	"product_image",
	"product_photo",
}

// ImageURL picks the record's best image reference and resolves it to an
// absolute URL. Candidate string fields win over the images list, whose
// first entry may be a bare string or an object keyed url/image/src.
// Returns "" when the record carries no usable image.
func ImageURL(p scoring.Product, mediaBase string) string {
	for _, key := range imageCandidateKeys {
		if s, ok := p[key].(string); ok && strings.TrimSpace(s) != "" {
			return normalizeImageURL(strings.TrimSpace(s), mediaBase)
		}
	}

	images, ok := p["images"].([]any)
	if !ok || len(images) == 0 {
		return ""
	}
	switch first := images[0].(type) {
	case string:
		if strings.TrimSpace(first) != "" {
			return normalizeImageURL(strings.TrimSpace(first), mediaBase)
		}
	case map[string]any:
		for _, key := range []string{"url", "image", "src"} {
			if s, ok := first[key].(string); ok && strings.TrimSpace(s) != "" {
				return normalizeImageURL(strings.TrimSpace(s), mediaBase)
			}
		}
	}
	return ""
}

// normalizeImageURL leaves absolute http(s) URLs alone and joins anything
// else onto the media base.
func normalizeImageURL(path, mediaBase string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if mediaBase == "" {
		mediaBase = DefaultMediaBaseURL
	}
	return strings.TrimSuffix(mediaBase, "/") + "/" + strings.TrimLeft(path, "/")
}

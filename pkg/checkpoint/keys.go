package checkpoint

import (
	"fmt"
	"strings"
)

// DefaultAdapterPrefixes select the flow-line adapter weights.
var DefaultAdapterPrefixes = []string{"flow_line_patch_embedding.", "flow_line_blocks."}

// DefaultStripPrefixes are removed from training checkpoint keys.
var DefaultStripPrefixes = []string{"pipe.flow_line_adapter.", "pipe.dit."}

// ParsePrefixes splits a comma separated prefix list, dropping blanks.
func ParsePrefixes(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// Split moves the keys matching any prefix into matched and everything else
// into rest. Both keep the source metadata.
func Split(f *File, prefixes []string) (matched, rest *File) {
	matched, rest = f.derive(), f.derive()
	for k, t := range f.Tensors {
		if hasAnyPrefix(k, prefixes) {
			matched.Tensors[k] = t
		} else {
			rest.Tensors[k] = t
		}
	}
	return matched, rest
}

// Filter keeps only the keys matching any prefix.
func Filter(f *File, prefixes []string) *File {
	matched, _ := Split(f, prefixes)
	return matched
}

// Rename records one key changed by StripPrefixes.
type Rename struct {
	From string
	To   string
}

// StripPrefixes removes the first matching prefix from every key. Renames are
// returned in sorted order of the original key. Two keys ending up with the
// same name fail with ErrKeyCollision.
func StripPrefixes(f *File, prefixes []string) (*File, []Rename, error) {
	out := f.derive()
	origin := make(map[string]string, len(f.Tensors))
	var renames []Rename

	for _, k := range f.Keys() {
		name := k
		for _, p := range prefixes {
			if strings.HasPrefix(k, p) {
				name = k[len(p):]
				break
			}
		}
		if prev, ok := origin[name]; ok {
			return nil, nil, fmt.Errorf("%w: %q and %q both become %q", ErrKeyCollision, prev, k, name)
		}
		origin[name] = k
		out.Tensors[name] = f.Tensors[k]
		if name != k {
			renames = append(renames, Rename{From: k, To: name})
		}
	}
	return out, renames, nil
}

// Package fact provides the immutable entity representation that legal
// predicates are evaluated against.
//
// A Fact is a named mapping from attribute names to values. Values are
// booleans, numbers, strings, or nested Facts. Facts are constructed once
// and never mutated afterwards, which keeps evaluation traces reproducible
// and makes structural fingerprints safe to cache.
package fact

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
)

// Fact is an immutable entity under evaluation: a claim, an administrative
// action, a person, a limitation. Attribute absence is distinct from a
// false value; Get reports presence explicitly.
type Fact struct {
	id          string
	attrs       map[string]any
	fingerprint uint64
}

// New constructs a Fact from an attribute map. Supported value types are
// bool, string, int, int64, float64, map[string]any (converted to a nested
// Fact), and *Fact. Numeric values are normalized to float64. The input map
// is copied; the caller may reuse it afterwards.
func New(id string, attrs map[string]any) (*Fact, error) {
	if id == "" {
		return nil, fmt.Errorf("fact id is required")
	}

	f := &Fact{
		id:    id,
		attrs: make(map[string]any, len(attrs)),
	}
	for name, raw := range attrs {
		if name == "" {
			return nil, fmt.Errorf("fact %q: attribute name must be non-empty", id)
		}
		val, err := normalize(id, name, raw)
		if err != nil {
			return nil, err
		}
		f.attrs[name] = val
	}

	f.fingerprint = computeFingerprint(f)
	return f, nil
}

// MustNew is like New but panics on error. Intended for fixtures and
// statically known attribute maps.
func MustNew(id string, attrs map[string]any) *Fact {
	f, err := New(id, attrs)
	if err != nil {
		panic(err)
	}
	return f
}

func normalize(factID, name string, raw any) (any, error) {
	switch v := raw.(type) {
	case bool, string, float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case map[string]any:
		nested, err := New(factID+"."+name, v)
		if err != nil {
			return nil, err
		}
		return nested, nil
	case *Fact:
		if v == nil {
			return nil, fmt.Errorf("fact %q: attribute %q is a nil fact", factID, name)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("fact %q: attribute %q has unsupported type %T", factID, name, raw)
	}
}

// ID returns the fact identifier.
func (f *Fact) ID() string {
	return f.id
}

// Get returns the value of an attribute and whether it is present.
// Absence is a distinct outcome from a false value.
func (f *Fact) Get(name string) (any, bool) {
	v, ok := f.attrs[name]
	return v, ok
}

// Bool returns a boolean attribute. The second return is false when the
// attribute is absent or not a boolean.
func (f *Fact) Bool(name string) (bool, bool) {
	v, ok := f.attrs[name]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Number returns a numeric attribute. The second return is false when the
// attribute is absent or not numeric.
func (f *Fact) Number(name string) (float64, bool) {
	v, ok := f.attrs[name]
	if !ok {
		return 0, false
	}
	n, ok := v.(float64)
	return n, ok
}

// String returns a string attribute. The second return is false when the
// attribute is absent or not a string.
func (f *Fact) String(name string) (string, bool) {
	v, ok := f.attrs[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Nested returns a nested Fact attribute. The second return is false when
// the attribute is absent or not a nested fact.
func (f *Fact) Nested(name string) (*Fact, bool) {
	v, ok := f.attrs[name]
	if !ok {
		return nil, false
	}
	n, ok := v.(*Fact)
	return n, ok
}

// Attributes returns the attribute names in sorted order.
func (f *Fact) Attributes() []string {
	names := make([]string, 0, len(f.attrs))
	for name := range f.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of attributes.
func (f *Fact) Len() int {
	return len(f.attrs)
}

// Fingerprint returns a structural hash of the fact, covering its id and
// all attributes recursively. Two facts with equal fingerprints are treated
// as interchangeable by evaluation caches.
func (f *Fact) Fingerprint() uint64 {
	return f.fingerprint
}

// Equal reports structural equality: same id, same attributes, same values,
// nested facts compared recursively.
func (f *Fact) Equal(other *Fact) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.id != other.id || len(f.attrs) != len(other.attrs) {
		return false
	}
	for name, v := range f.attrs {
		ov, ok := other.attrs[name]
		if !ok {
			return false
		}
		nf, isFact := v.(*Fact)
		if isFact {
			onf, otherIsFact := ov.(*Fact)
			if !otherIsFact || !nf.Equal(onf) {
				return false
			}
			continue
		}
		if v != ov {
			return false
		}
	}
	return true
}

func computeFingerprint(f *Fact) uint64 {
	h := fnv.New64a()
	h.Write([]byte(f.id))
	h.Write([]byte{0})
	for _, name := range f.Attributes() {
		h.Write([]byte(name))
		h.Write([]byte{0})
		switch v := f.attrs[name].(type) {
		case bool:
			h.Write([]byte(strconv.FormatBool(v)))
		case float64:
			h.Write([]byte(strconv.FormatFloat(v, 'g', -1, 64)))
		case string:
			h.Write([]byte(v))
		case *Fact:
			var buf [8]byte
			fp := v.Fingerprint()
			for i := 0; i < 8; i++ {
				buf[i] = byte(fp >> (8 * i))
			}
			h.Write(buf[:])
		}
		h.Write([]byte{0})
	}
	return h.Sum64()
}

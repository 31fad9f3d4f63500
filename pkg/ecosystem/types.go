package ecosystem

import (
	"encoding/json"
	"sort"
	"strings"
)

// Well-known chapter titles of the upstream ecosystem document.
const (
	ChapterDjangoCMS       = "django CMS"
	ChapterDjangoTimelines = "Django timelines"
	ChapterCMSPackages     = "CMS packages"
	ChapterDjangoPackages  = "Django packages"
)

// Property keys read by the query layer and the reports.
const (
	PropPython        = "python"
	PropDjango        = "django"
	PropLTS           = "LTS"
	PropFeatureFreeze = "feature-freeze"
	PropEndOfSupport  = "end-of-support"
	PropDeprecated    = "deprecated"
	PropGrade         = "grade"
	PropDjangoCMS     = "django CMS"
)

// cmsSectionPrefix prefixes the titles of per-release sections in the
// "django CMS" chapter ("django CMS 4.1").
const cmsSectionPrefix = "django CMS"

// Document is the parsed ecosystem document: its chapters in source order.
//
// A Document is immutable once returned by [Parse]; the [Cache] replaces it
// wholesale on refresh, so it is safe to share between goroutines.
type Document struct {
	Chapters []*Chapter `json:"chapters"`
}

// Chapter is a level-2 heading of the document together with the prose
// that follows it and the level-3 sections nested below it.
type Chapter struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Sections    []*Section `json:"sections"`
}

// Section is a level-3 heading with its prose and the "* key: value"
// bullets listed under it.
type Section struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Properties  Properties `json:"properties"`
}

// Properties maps bullet keys to their values. Keys are kept exactly as
// written in the source; lookups are case-sensitive.
type Properties map[string]Value

// Get returns the value stored under key. The zero Value is returned when
// the key is absent.
func (p Properties) Get(key string) Value {
	return p[key]
}

// Has reports whether key was declared.
func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Items is shorthand for p.Get(key).Items().
func (p Properties) Items(key string) []string {
	return p[key].Items()
}

// Keys returns the declared keys in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the scalar form of key, or fallback when key is absent.
func (p Properties) String(key, fallback string) string {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	return v.String()
}

// Value is a property value: either a single string (scalar) or an ordered
// list of strings. The zero Value is an absent value.
type Value struct {
	items []string
	list  bool
}

// Scalar builds a single-string value.
func Scalar(s string) Value {
	return Value{items: []string{s}}
}

// List builds a list value.
func List(items ...string) Value {
	return Value{items: append([]string{}, items...), list: true}
}

// IsList reports whether the value was declared as a comma-separated list.
func (v Value) IsList() bool { return v.list }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return v.items == nil }

// Items returns the value as a list; a scalar becomes a one-element list
// and an absent value an empty one. The returned slice is a copy.
func (v Value) Items() []string {
	if v.items == nil {
		return []string{}
	}
	return append([]string(nil), v.items...)
}

// String returns a scalar as-is and joins list items with ", ".
func (v Value) String() string {
	return strings.Join(v.items, ", ")
}

// Truthy mirrors the truthiness of the raw bullet value: a non-empty
// string or a non-empty list.
func (v Value) Truthy() bool {
	if v.list {
		return len(v.items) > 0
	}
	return len(v.items) == 1 && v.items[0] != ""
}

// Contains reports whether item is one of the value's items (exact match).
func (v Value) Contains(item string) bool {
	for _, it := range v.items {
		if it == item {
			return true
		}
	}
	return false
}

// MarshalJSON encodes a scalar as a JSON string and a list as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.list {
		return json.Marshal(v.items)
	}
	if v.items == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v.items[0])
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Scalar(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*v = List(items...)
	return nil
}

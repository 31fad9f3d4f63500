package ecosystem

import (
	"slices"
	"strconv"
	"strings"
)

// unknownVersion is the sort key of versions that are not dot-separated
// integers. It outranks every real release, so such entries sort first.
var unknownVersion = []int{999, 999, 999}

// SortVersions returns a copy of versions sorted in descending order by
// their dot-separated integer components ("2.10" > "2.9" > "1.2").
//
// Versions that do not parse ("bogus", "5.0rc1", "") are keyed as 999.999.999
// and therefore come first. Equal keys keep their input order.
func SortVersions(versions []string) []string {
	type keyed struct {
		version string
		key     []int
	}
	ks := make([]keyed, len(versions))
	for i, v := range versions {
		ks[i] = keyed{version: v, key: versionKey(v)}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return compareKeys(b.key, a.key)
	})

	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.version
	}
	return out
}

// CompareVersions orders two version strings the way [SortVersions] does,
// returning -1, 0 or +1.
func CompareVersions(a, b string) int {
	return compareKeys(versionKey(a), versionKey(b))
}

func versionKey(version string) []int {
	parts := strings.Split(version, ".")
	key := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return unknownVersion
		}
		key[i] = n
	}
	return key
}

// compareKeys compares element-wise; a key that is a prefix of the other is
// the smaller one.
func compareKeys(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// distinct appends the items of each value to a list, skipping repeats.
func distinct(values ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, items := range values {
		for _, it := range items {
			if !seen[it] {
				seen[it] = true
				out = append(out, it)
			}
		}
	}
	return out
}

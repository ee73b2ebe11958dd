package validation

// DuplicateNameMessage is reported when two siblings share a name.
const DuplicateNameMessage = "duplicate property names are not allowed"

// FirstDuplicate scans items left to right and returns the indices of the
// first pair whose names are equal. Comparison is exact string equality.
func FirstDuplicate[T any](items []T, name func(T) string) (first, second int, found bool) {
	seen := make(map[string]int, len(items))
	for idx, item := range items {
		key := name(item)
		if prev, ok := seen[key]; ok {
			return prev, idx, true
		}
		seen[key] = idx
	}
	return -1, -1, false
}

// CheckDuplicateNames records DuplicateNameMessage at the second occurrence of
// the first repeated name and reports whether the list is free of duplicates.
// positions maps each item to its index in the original input, which may
// differ from its index in items when invalid entries were skipped.
func CheckDuplicateNames[T any](c *Collector, path Path, items []T, positions []int, name func(T) string) bool {
	first, second, found := FirstDuplicate(items, name)
	if !found {
		return true
	}
	at := second
	entries := []int{first, second}
	if len(positions) == len(items) {
		at = positions[second]
		entries = []int{positions[first], positions[second]}
	}
	c.AddEntries(path.Index(at), KindCrossField, DuplicateNameMessage, entries)
	return false
}

package content

import "strings"

// SafeName reports whether name can be used as a single path element in the
// publish tree.
func SafeName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

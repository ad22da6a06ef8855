package model

import (
	"fmt"
	"strings"
)

// ConnectionID builds the canonical, order-independent id for the
// undirected edge between peers a and b: "max(a,b)*min(a,b)" using
// lexicographic string comparison (spec §3, §9). Callers MUST go through
// this helper rather than concatenating ids directly, so ConnectionID(a, b)
// always equals ConnectionID(b, a).
func ConnectionID(a, b string) string {
	if a > b {
		return fmt.Sprintf("%s*%s", a, b)
	}
	return fmt.Sprintf("%s*%s", b, a)
}

// SplitConnectionID decomposes a ConnectionID back into its two peer ids.
// It returns ok=false if id does not contain exactly one "*" separator.
func SplitConnectionID(id string) (a, b string, ok bool) {
	parts := strings.Split(id, "*")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a lexicographically sortable ID. ulid.Make is safe for
// concurrent use and monotonic within a process.
func NewULID() string {
	return ulid.Make().String()
}

// IsULID reports whether s is a well-formed ULID.
func IsULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

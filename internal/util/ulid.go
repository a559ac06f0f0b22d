package util

import "github.com/oklog/ulid/v2"

// NewULID generates a new ULID string using the package's secure default
// entropy source. ULIDs sort lexicographically by creation time, which
// keeps achievement and audit-log ids naturally ordered.
func NewULID() string {
	return ulid.Make().String()
}

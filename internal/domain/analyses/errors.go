package analyses

import "errors"

// ErrNotFound is returned for a missing record and for records owned
// by someone else, so identifiers cannot be enumerated across owners.
var ErrNotFound = errors.New("analysis not found")

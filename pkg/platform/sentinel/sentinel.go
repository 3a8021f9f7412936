package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//   - ErrNotFound: the row does not exist
//   - ErrConflict: a uniqueness guard rejected the write (for example a second
//     unresolved alert for the same traveler)
//   - ErrStale: a conditional write matched no current version
//   - ErrUnavailable: the backend is temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrStale       = errors.New("stale version")
	ErrUnavailable = errors.New("unavailable")
)

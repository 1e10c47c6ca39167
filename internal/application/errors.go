package application

import "errors"

// Errors returned by EntryService and EntryList. Operations wrap them, so
// callers should match with errors.Is.
var (
	// ErrStorageUnavailable indicates the persistence engine could not be
	// reached. Retrying is safe; no data was lost.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrPersistenceWriteFailed indicates a create, update or delete did not
	// commit. The in-memory collection still matches the last committed state.
	ErrPersistenceWriteFailed = errors.New("persistence write failed")

	// ErrEntryNotFound indicates the referenced entry ID is not in the store.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrIndexOutOfRange indicates a list index outside [0, Count).
	ErrIndexOutOfRange = errors.New("index out of range")
)

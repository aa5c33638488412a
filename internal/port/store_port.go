package port

// Store is the browser-local persistence analog: a flat key to
// JSON-document map. Implementations never fail loudly — persistence
// is best-effort and callers treat a missing value as empty state.
type Store interface {
	// Load unmarshals the value stored under key into v and reports
	// whether a well-formed value was found. Absent, corrupt, or
	// unreadable records report false; corrupt records are removed.
	Load(key string, v any) bool

	// Save marshals v and writes it under key, overwriting any prior
	// value. Failures are swallowed.
	Save(key string, v any)

	// Delete removes the value stored under key, if any.
	Delete(key string)
}

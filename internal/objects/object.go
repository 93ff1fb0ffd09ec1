package objects

// Object represents anything kvcs persists in the object store.
type Object interface {
	// Hash returns the key the object is stored under.
	Hash() string

	// Content returns the exact bytes written to the store.
	Content() []byte
}

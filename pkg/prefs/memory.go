package prefs

// MemoryStore keeps prefs in a map. Useful for tests and --prefs-backend=memory.
type MemoryStore struct {
	values map[string]Prefs
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]Prefs)}
}

func (m *MemoryStore) Get(key string) (Prefs, bool, error) {
	p, ok := m.values[key]
	return clonePrefs(p), ok, nil
}

func (m *MemoryStore) Set(key string, p Prefs) error {
	m.values[key] = clonePrefs(p)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

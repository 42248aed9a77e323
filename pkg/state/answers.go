// Package state holds the per-session journey data: the answer store, repeat
// item collections and the session aggregate. The engine owns the schema and
// mutation rules defined here; durability belongs to a session store.
package state

// Answers maps component names to submitted values. Values are the parsed
// forms produced by validation: string, bool, float64 or []string.
type Answers map[string]any

// Get returns the raw answer for name, with ok reporting presence.
func (a Answers) Get(name string) (any, bool) {
	value, ok := a[name]
	return value, ok
}

// GetString returns the answer for name when it is a string.
func (a Answers) GetString(name string) (string, bool) {
	value, ok := a[name].(string)
	return value, ok
}

// GetBool returns the answer for name when it is a bool.
func (a Answers) GetBool(name string) (bool, bool) {
	value, ok := a[name].(bool)
	return value, ok
}

// Merge copies every entry of src into a, overwriting existing keys.
func (a Answers) Merge(src Answers) {
	for key, value := range src {
		a[key] = value
	}
}

// Clone returns a copy of the answer map. Slice values are copied so the
// clone shares no mutable data with the original.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	for key, value := range a {
		if slice, ok := value.([]string); ok {
			out[key] = append([]string(nil), slice...)
			continue
		}
		out[key] = value
	}
	return out
}

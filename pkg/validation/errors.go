package validation

import "sort"

// Errors maps field names to their first failure message.
type Errors map[string]string

// NewErrors returns an empty error set.
func NewErrors() Errors {
	return make(Errors)
}

// Add records message for key unless key already failed or message is empty.
func (e Errors) Add(key, message string) {
	if message == "" {
		return
	}
	if _, exists := e[key]; !exists {
		e[key] = message
	}
}

// Check records message for key when ok is false.
func (e Errors) Check(ok bool, key, message string) {
	if !ok {
		e.Add(key, message)
	}
}

// Get returns the message for key, empty when the field passed.
func (e Errors) Get(key string) string {
	return e[key]
}

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Keys returns failed field names sorted alphabetically.
func (e Errors) Keys() []string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

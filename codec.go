package circuits

import (
	"fmt"
	"strings"
)

const (
	encodedAbsent       = "absent"
	encodedHandlePrefix = "handle:"
)

// EncodeEntry returns the string form persisted stores write for entry.
func EncodeEntry(entry Entry) (string, error) {
	if entry.IsAbsent() {
		return encodedAbsent, nil
	}
	h, ok := entry.Handle()
	if !ok {
		return "", ErrInvalidHandleEntry
	}
	return encodedHandlePrefix + h.ID(), nil
}

// DecodeEntry parses a value written by EncodeEntry, resolving handle IDs
// through dir.
func DecodeEntry(value string, dir *Directory) (Entry, error) {
	if value == encodedAbsent {
		return Absent(), nil
	}
	id, ok := strings.CutPrefix(value, encodedHandlePrefix)
	if !ok || id == "" {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidHandleEntry, value)
	}
	h, ok := dir.Resolve(id)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownCircuit, id)
	}
	return HandleEntry(h), nil
}

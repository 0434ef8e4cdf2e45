package circuits

type entryKind uint8

const (
	entryInvalid entryKind = iota
	entryAbsent
	entryHandle
)

// Entry is the value a Store keeps under a key: either Absent or a Handle.
// The zero Entry is neither and is reported as ErrInvalidHandleEntry.
type Entry struct {
	kind   entryKind
	handle *Handle
}

// Absent returns an entry recording that a key has no circuit.
func Absent() Entry {
	return Entry{kind: entryAbsent}
}

// HandleEntry returns an entry referencing h. A nil handle yields Absent.
func HandleEntry(h *Handle) Entry {
	if h == nil {
		return Absent()
	}
	return Entry{kind: entryHandle, handle: h}
}

// Handle returns the referenced handle and whether the entry holds one.
func (e Entry) Handle() (*Handle, bool) {
	if e.kind != entryHandle {
		return nil, false
	}
	return e.handle, true
}

// IsAbsent reports whether the entry explicitly records no circuit.
func (e Entry) IsAbsent() bool { return e.kind == entryAbsent }

// Valid reports whether the entry was built by Absent or HandleEntry.
func (e Entry) Valid() bool { return e.kind == entryAbsent || e.kind == entryHandle }

package element

// NameEntry is the interned state of one name.
type NameEntry struct {
	// Id of the name, shared by all points and ways with this name.
	Id uint32 `json:"id"`
	// Count of points and ways that used the name.
	Count int `json:"count"`
}

// NameTable assigns small ids to names. Ids start at 1 and are unique
// within one import run, 0 means no name.
//
// A NameTable is not safe for concurrent use.
type NameTable struct {
	entries map[string]NameEntry
	names   map[uint32]string
	next    uint32
}

func NewNameTable() *NameTable {
	return &NameTable{
		entries: make(map[string]NameEntry),
		names:   make(map[uint32]string),
		next:    1,
	}
}

// Intern returns the id of name. Unknown names get the next id, known
// names increase their count.
func (nt *NameTable) Intern(name string) uint32 {
	if e, ok := nt.entries[name]; ok {
		e.Count++
		nt.entries[name] = e
		return e.Id
	}
	id := nt.next
	nt.next++
	nt.entries[name] = NameEntry{Id: id, Count: 1}
	nt.names[id] = name
	return id
}

// ResetCounter restarts the id sequence at 1. The sequence continues
// if names were interned already, ids are never reused.
func (nt *NameTable) ResetCounter() {
	if len(nt.entries) > 0 {
		return
	}
	nt.next = 1
}

// Entry returns the entry of name.
func (nt *NameTable) Entry(name string) (NameEntry, bool) {
	e, ok := nt.entries[name]
	return e, ok
}

// Name returns the first name interned with id.
func (nt *NameTable) Name(id uint32) (string, bool) {
	n, ok := nt.names[id]
	return n, ok
}

func (nt *NameTable) Len() int {
	return len(nt.entries)
}

// Each calls fn for all names, in no particular order.
func (nt *NameTable) Each(fn func(name string, e NameEntry)) {
	for n, e := range nt.entries {
		fn(n, e)
	}
}

// Set adds name with entry e, as restored from a stored snapshot. The
// id sequence continues after the highest id.
func (nt *NameTable) Set(name string, e NameEntry) {
	nt.entries[name] = e
	if _, ok := nt.names[e.Id]; !ok {
		nt.names[e.Id] = name
	}
	if e.Id >= nt.next {
		nt.next = e.Id + 1
	}
}

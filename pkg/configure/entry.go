package configure

import "fmt"

// EntryType enumerates the CMake cache entry types this tool emits.
type EntryType string

const (
	TypePath   EntryType = "PATH"
	TypeString EntryType = "STRING"
	TypeBool   EntryType = "BOOL"
)

// Entry is a single cache definition passed to CMake. Unset marks a removal
// entry; Type and Value are ignored for those.
type Entry struct {
	Name  string
	Type  EntryType
	Value string
	Unset bool
}

// Arg renders the entry in CMake's command line syntax.
func (e Entry) Arg() string {
	if e.Unset {
		return "-U" + e.Name
	}

	return fmt.Sprintf("-D%s:%s=%s", e.Name, e.Type, e.Value)
}

// EntryList is an ordered, append-only collection of cache entries.
// Duplicate names are kept as-is; CMake applies the last one so appending a
// new entry with the same name overrides the earlier value without touching
// the list.
type EntryList []Entry

func (l *EntryList) Append(name string, entryType EntryType, value string) {
	*l = append(*l, Entry{Name: name, Type: entryType, Value: value})
}

func (l *EntryList) AppendUnset(name string) {
	*l = append(*l, Entry{Name: name, Unset: true})
}

// Args renders all entries in insertion order.
func (l EntryList) Args() []string {
	args := make([]string, len(l))
	for idx, entry := range l {
		args[idx] = entry.Arg()
	}

	return args
}

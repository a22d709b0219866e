package nasus

import "time"

// EntryKind classifies a filesystem entity beneath the served root.
type EntryKind string

const (
	KindFile  EntryKind = "file"
	KindDir   EntryKind = "dir"
	KindOther EntryKind = "other"
)

// Entry describes a filesystem entity beneath the served root. Entries are
// constructed only by the filesystem package from paths that already passed
// DecodeRequestPath.
type Entry struct {
	Kind       EntryKind
	Path       string // absolute path on disk
	Rel        string // slash-separated path relative to the served root, "." for the root itself
	Name       string
	Size       int64
	ModTime    time.Time
	Symlink    bool
	Unreadable bool // the process cannot open the entry for reading
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// Hidden reports whether the entry is a dotfile by Unix convention.
func (e Entry) Hidden() bool {
	return IsHiddenName(e.Name)
}

// Package filesystem performs the disk probes behind the nasus pipeline.
// All access goes through an os.Root so a resolved path can never escape
// the served directory, and content types are detected by file extension
// with a content-sniffing fallback.
package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/kachayev/nasus"
)

// Store probes and reads the served directory tree.
type Store struct {
	root *os.Root
	abs  string
}

// New opens the served directory and returns a Store sandboxed to it.
func New(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve served directory: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open served directory: %w", err)
	}

	return &Store{root: root, abs: abs}, nil
}

// Close releases the handle on the served directory.
func (s *Store) Close() error {
	return s.root.Close()
}

// relName converts a decoded request path into the name the sandboxed root
// expects: "." for the served root itself, "a/b" otherwise. Repeated
// slashes collapse; dot segments were already rejected upstream.
func relName(clean string) string {
	rel := strings.Trim(path.Clean(clean), "/")
	if rel == "" {
		return "."
	}
	return rel
}

// Stat classifies the entity a decoded request path points at. The path
// must already have passed nasus.DecodeRequestPath. Missing entities, and
// symlinks whose target is missing or outside the served root, are
// reported as nasus.ErrNotFound.
func (s *Store) Stat(clean string) (nasus.Entry, error) {
	rel := relName(clean)

	info, err := s.root.Lstat(rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nasus.Entry{}, fmt.Errorf("stat %q: %w", clean, nasus.ErrNotFound)
		}
		return nasus.Entry{}, fmt.Errorf("stat %q: %w", clean, err)
	}

	symlink := info.Mode()&fs.ModeSymlink != 0
	if symlink {
		// Classify by the target; the policy decision stays with the
		// Symlink flag.
		target, terr := s.root.Stat(rel)
		if terr != nil {
			return nasus.Entry{}, fmt.Errorf("stat %q: %w", clean, nasus.ErrNotFound)
		}
		info = target
	}

	name := path.Base(clean)
	if name == "/" || name == "." {
		name = filepath.Base(s.abs)
	}

	return nasus.Entry{
		Kind:    classify(info.Mode()),
		Path:    filepath.Join(s.abs, filepath.FromSlash(rel)),
		Rel:     rel,
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Symlink: symlink,
	}, nil
}

// ReadDir lists the immediate children of a directory entry in byte order
// of their names. Children are classified without following symlinks;
// children whose metadata cannot be read are left out. Children the
// process cannot open for reading are flagged Unreadable.
func (s *Store) ReadDir(dir nasus.Entry) ([]nasus.Entry, error) {
	dirEntries, err := fs.ReadDir(s.root.FS(), dir.Rel)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir.Rel, err)
	}

	entries := make([]nasus.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}

		rel := path.Join(dir.Rel, de.Name())
		entries = append(entries, nasus.Entry{
			Kind:       classify(info.Mode()),
			Path:       filepath.Join(s.abs, filepath.FromSlash(rel)),
			Rel:        rel,
			Name:       de.Name(),
			Size:       info.Size(),
			ModTime:    info.ModTime(),
			Symlink:    de.Type()&fs.ModeSymlink != 0,
			Unreadable: s.unreadable(rel, info.Mode()),
		})
	}

	return entries, nil
}

// unreadable reports whether a directory child cannot be opened for
// reading. Fifos and device nodes are never opened here; opening one can
// block.
func (s *Store) unreadable(rel string, mode fs.FileMode) bool {
	if !mode.IsRegular() && !mode.IsDir() {
		return false
	}

	f, err := s.root.Open(rel)
	if err != nil {
		return true
	}
	if closeErr := f.Close(); closeErr != nil {
		slog.Warn("failed to close file after readability check", "path", rel, "err", closeErr)
	}
	return false
}

// Open opens a file entry for reading. The caller closes the returned
// file.
func (s *Store) Open(e nasus.Entry) (io.ReadCloser, error) {
	f, err := s.root.Open(e.Rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %q: %w", e.Rel, nasus.ErrNotFound)
		}
		return nil, fmt.Errorf("open %q: %w", e.Rel, err)
	}
	return f, nil
}

// DetectContentType returns the media type for a file entry, or "" when
// the type is unknown. The extension mapping is consulted first; files
// without a mapped extension are sniffed by content.
func (s *Store) DetectContentType(e nasus.Entry) string {
	if ct := mime.TypeByExtension(filepath.Ext(e.Name)); ct != "" {
		return ct
	}

	f, err := s.root.Open(e.Rel)
	if err != nil {
		return ""
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file after content detection", "path", e.Rel, "err", closeErr)
		}
	}()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return ""
	}
	if mt.Is("application/octet-stream") {
		return ""
	}
	return mt.String()
}

func classify(mode fs.FileMode) nasus.EntryKind {
	switch {
	case mode.IsDir():
		return nasus.KindDir
	case mode.IsRegular():
		return nasus.KindFile
	default:
		return nasus.KindOther
	}
}

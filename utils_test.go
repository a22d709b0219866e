package nasus_test

import (
	"errors"
	"testing"

	"github.com/kachayev/nasus"
)

func TestIsSafeRequestPath(t *testing.T) {
	tt := []struct {
		Name string
		Path string
		Want bool
	}{
		// Basics
		{Name: "root path", Path: "/", Want: true},
		{Name: "empty path", Path: "", Want: false},
		{Name: "no leading slash", Path: "some/path", Want: false},
		{Name: "plain file", Path: "/some/file.txt", Want: true},

		// Traversal shapes
		{Name: "double dots prefix", Path: "../etc/passwd", Want: false},
		{Name: "parent segment in middle", Path: "/a/../b", Want: false},
		{Name: "parent segment at end", Path: "/a/..", Want: false},
		{Name: "trailing dot", Path: "/a/b.", Want: false},
		{Name: "single dot segment", Path: "/a/./b", Want: false},
		{Name: "hidden segment shape", Path: "/home/.ssh/id_rsa", Want: false},
		{Name: "dot before slash", Path: "/a./b", Want: false},
		{Name: "bare dot", Path: "/.", Want: false},

		// Injection characters
		{Name: "left angle bracket", Path: "/a<b", Want: false},
		{Name: "right angle bracket", Path: "/a>b", Want: false},
		{Name: "ampersand", Path: "/a&b", Want: false},
		{Name: "double quote", Path: `/a"b`, Want: false},

		// Valid examples
		{Name: "nested path", Path: "/some/path/file.ext", Want: true},
		{Name: "trailing slash", Path: "/some/dir/", Want: true},
		{Name: "dots inside name", Path: "/archive.tar.gz", Want: true},
		{Name: "space in name", Path: "/my file.txt", Want: true},
		{Name: "unicode", Path: "/привет/世界/file.ext", Want: true},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got := nasus.IsSafeRequestPath(tc.Path)
			if got != tc.Want {
				expected := "safe"
				if !tc.Want {
					expected = "unsafe"
				}
				t.Errorf("expected path %q to be %s, got %v", tc.Path, expected, got)
			}
		})
	}
}

func TestDecodeRequestPath(t *testing.T) {
	tt := []struct {
		Name    string
		Raw     string
		Want    string
		WantErr bool
	}{
		{Name: "plain", Raw: "/foo.txt", Want: "/foo.txt"},
		{Name: "encoded space", Raw: "/my%20file.txt", Want: "/my file.txt"},
		{Name: "encoded slash", Raw: "/docs%2Freadme", Want: "/docs/readme"},
		{Name: "encoded unicode", Raw: "/%D0%BC%D0%B8%D1%80.txt", Want: "/мир.txt"},
		{Name: "encoded traversal", Raw: "/%2e%2e/etc/passwd", WantErr: true},
		{Name: "half encoded traversal", Raw: "/a/%2e./b", WantErr: true},
		{Name: "encoded angle bracket", Raw: "/%3cscript%3e", WantErr: true},
		{Name: "invalid escape", Raw: "/foo%zz", WantErr: true},
		{Name: "truncated escape", Raw: "/foo%2", WantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := nasus.DecodeRequestPath(tc.Raw)
			if tc.WantErr {
				if !errors.Is(err, nasus.ErrUnsafePath) {
					t.Fatalf("expected ErrUnsafePath for %q, got %v", tc.Raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.Raw, err)
			}
			if got != tc.Want {
				t.Errorf("expected %q, got %q", tc.Want, got)
			}
		})
	}
}

func TestIsSafeListingName(t *testing.T) {
	tt := []struct {
		Name  string
		Entry string
		Want  bool
	}{
		{Name: "plain", Entry: "foo.txt", Want: true},
		{Name: "interior dash and dots", Entry: "my-archive.tar.gz", Want: true},
		{Name: "unicode", Entry: "мир.txt", Want: true},
		{Name: "empty", Entry: "", Want: false},
		{Name: "leading dash", Entry: "-rf", Want: false},
		{Name: "leading dot", Entry: ".profile", Want: false},
		{Name: "leading underscore", Entry: "_build", Want: false},
		{Name: "angle bracket", Entry: "a<b>.txt", Want: false},
		{Name: "ampersand", Entry: "a&b.txt", Want: false},
		{Name: "double quote", Entry: `a"b.txt`, Want: false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			if got := nasus.IsSafeListingName(tc.Entry); got != tc.Want {
				t.Errorf("expected IsSafeListingName(%q) = %v, got %v", tc.Entry, tc.Want, got)
			}
		})
	}
}

func TestIsHiddenName(t *testing.T) {
	if !nasus.IsHiddenName(".git") {
		t.Error("expected .git to be hidden")
	}
	if nasus.IsHiddenName("git") {
		t.Error("expected git to be visible")
	}
}

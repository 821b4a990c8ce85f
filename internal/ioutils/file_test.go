package ioutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-asset", "normal-asset"},
		{"Sci-Fi Props: Vol 1/2", "Sci-Fi Props_ Vol 1_2"},
		{"file<with>brackets", "file_with_brackets"},
		{"file|with|pipes", "file_with_pipes"},
		{"file?with*wildcards", "file_with_wildcards"},
		{"file\"with\"quotes", "file_with_quotes"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"CON", "_CON"},
		{"nul", "_nul"},
		{"COM3", "_COM3"},
		{"", "untitled"},
		{"...", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.ContainsAny(got, `/\`) {
				t.Errorf("SanitizeFileName(%q) = %q contains a path separator", tt.input, got)
			}
		})
	}
}

func TestSafeCreateDir(t *testing.T) {
	base := t.TempDir()

	nested := filepath.Join(base, "out", "manifests")
	if err := SafeCreateDir(nested); err != nil {
		t.Fatalf("SafeCreateDir(%q) = %v", nested, err)
	}
	if info, err := os.Stat(nested); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}

	// Creating again is not an error.
	if err := SafeCreateDir(nested); err != nil {
		t.Fatalf("second SafeCreateDir = %v", err)
	}
}

func TestSafeCreateDir_RejectsTraversal(t *testing.T) {
	base := t.TempDir()

	// ".." components that collapse cleanly against preceding path
	// elements must still be refused.
	paths := []string{
		filepath.Join(base, "out") + "/../../outside",
		filepath.Join(base, "out") + "/../outside",
		"out/../../outside",
		"../outside",
	}
	for _, p := range paths {
		if err := SafeCreateDir(p); err == nil {
			t.Errorf("SafeCreateDir(%q) accepted a traversal path", p)
		}
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(base), "outside")); !os.IsNotExist(err) {
		t.Errorf("directory created outside base: stat err = %v", err)
	}
}

func TestJoinInside(t *testing.T) {
	dir := t.TempDir()

	path, err := JoinInside(dir, "asset.json")
	if err != nil {
		t.Fatalf("JoinInside = %v", err)
	}
	if filepath.Dir(path) != filepath.Clean(dir) {
		t.Errorf("JoinInside produced %q, not inside %q", path, dir)
	}

	if _, err := JoinInside(dir, "../escape.json"); err == nil {
		t.Error("JoinInside accepted an escaping name")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	data := []byte(`{"hello":"world"}`)

	if err := WriteFileAtomic(path, data); err != nil {
		t.Fatalf("WriteFileAtomic = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("read back %q, want %q", got, data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}

	// Overwrite works.
	if err := WriteFileAtomic(path, []byte("{}")); err != nil {
		t.Fatalf("overwrite = %v", err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != "{}" {
		t.Errorf("after overwrite: %q", got)
	}
}

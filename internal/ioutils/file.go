package ioutils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Characters: < > : " / \ | ? * and control characters (0x00-0x1f)
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

	trailingDots = regexp.MustCompile(`\.+$`)

	multiSpace = regexp.MustCompile(`\s+`)
)

// Names Windows refuses regardless of extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// The result never contains a path separator, so joining it under a
// directory cannot escape that directory. The following transformations
// are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Leading/trailing whitespace → removed
//   - Reserved device names (CON, NUL, COM1, ...) → underscore-prefixed
//   - Empty result → "untitled"
//
// Example:
//
//	SanitizeFileName("Sci-Fi Props: Vol 1/2") // "Sci-Fi Props_ Vol 1_2"
//	SanitizeFileName("../../etc/passwd")      // ".._.._etc_passwd"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	name = strings.Trim(name, " ")

	if reservedNames[strings.ToUpper(name)] {
		name = "_" + name
	}
	if name == "" {
		name = "untitled"
	}

	return name
}

// SafeCreateDir creates a directory and all parents, rejecting paths that
// contain parent-directory traversal components.
//
// Directories are created with mode 0755. An already existing directory
// is not an error. Paths like "out/../../etc" are refused before any
// filesystem change is made.
func SafeCreateDir(path string) error {
	// Scan the path as given. Cleaning first would collapse interior
	// ".." components against their preceding directories and let a
	// traversal like "out/../../etc" slip through.
	normalized := strings.ReplaceAll(path, "\\", "/")
	for _, part := range strings.Split(normalized, "/") {
		if part == ".." {
			return fmt.Errorf("refusing to create directory outside root: %s", path)
		}
	}
	return os.MkdirAll(filepath.Clean(path), 0755)
}

// JoinInside joins name under dir and verifies the result still resolves
// strictly inside dir. The name is expected to already be sanitized; the
// check is the backstop.
func JoinInside(dir, name string) (string, error) {
	joined := filepath.Join(dir, name)
	dirClean := filepath.Clean(dir)
	if joined != dirClean && !strings.HasPrefix(joined, dirClean+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes directory %q", name, dir)
	}
	return joined, nil
}

// WriteFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename, so readers never observe a partially
// written file.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

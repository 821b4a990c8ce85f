// Package ioutils provides file system utilities for fabdl.
//
// This package contains functions for:
//   - Filename sanitization (cross-platform, including Windows device names)
//   - Traversal-safe directory creation
//   - Atomic file writing
//
// The download orchestrator relies on these to guarantee that manifests
// land strictly inside the caller-supplied output directory.
package ioutils

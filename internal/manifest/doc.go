// Package manifest converts opaque manifest payloads into structured
// model.ParsedManifest values.
//
// The Parser interface is the pluggable codec extension point of the
// pipeline: JSONParser handles the standard UTF-8 JSON manifests, and a
// caller with a non-JSON backend substitutes its own implementation when
// constructing the download manager.
//
// Parsing failures are distinguishable from request failures: malformed
// bytes surface as ErrInvalidManifest, schema mismatches as a
// *ValidationError describing the offending location.
package manifest

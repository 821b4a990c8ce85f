package model

import "encoding/json"

// ManifestFile is one file entry in a parsed manifest.
type ManifestFile struct {
	// Filename is the file's path inside the asset.
	Filename string

	// FileHash is the content hash the manifest records for the file.
	FileHash string

	// ChunkParts describes the chunk layout. The entries are opaque to
	// this client and kept as raw JSON objects.
	ChunkParts []json.RawMessage
}

// ParsedManifest is a decoded manifest document.
//
// Manifests enumerate the files constituting one asset's downloadable
// content. The client downloads them as opaque bytes; parsing happens
// lazily through download.Outcome.Load or directly via a manifest.Parser.
type ParsedManifest struct {
	// Version is the manifest file version string.
	Version string

	// AppID is the application ID.
	AppID string

	// AppName is the application name string.
	AppName string

	// BuildVersion is the build version string.
	BuildVersion string

	// Files lists every file in the manifest, in document order.
	Files []ManifestFile
}

// Package model contains the domain types for the Fab library client.
//
// The types here are plain data containers: Asset, Library, Listing,
// Seller, License and Capabilities mirror what the marketplace API
// returns, while ParsedManifest and ManifestFile describe the contents
// of a downloaded manifest document.
//
// None of these types perform I/O. Fetching lives in internal/fab and
// downloading in internal/download.
package model

package auth

import (
	"fmt"
	"strings"
)

// Placeholders substituted into endpoint URL templates.
const (
	placeholderAssetUID = "{asset_uid}"
	placeholderFileUID  = "{file_uid}"
)

// Endpoints holds the URL templates for the three API operations the
// client performs.
//
// AssetFormats must contain the {asset_uid} placeholder; DownloadInfo
// must contain both {asset_uid} and {file_uid}. LibrarySearch takes no
// placeholders (the cursor travels as a query parameter).
type Endpoints struct {
	// LibrarySearch is the library search URL.
	LibrarySearch string

	// AssetFormats is the asset formats URL template.
	// Example: "https://api.example.com/library/{asset_uid}/asset-formats"
	AssetFormats string

	// DownloadInfo is the download info URL template.
	// Example: ".../library/{asset_uid}/files/{file_uid}/download-info"
	DownloadInfo string
}

// Validate checks that each template carries its required placeholders.
func (e Endpoints) Validate() error {
	if e.LibrarySearch == "" {
		return fmt.Errorf("endpoints: library search URL is empty")
	}
	if !strings.Contains(e.AssetFormats, placeholderAssetUID) {
		return fmt.Errorf("endpoints: asset formats template missing %s", placeholderAssetUID)
	}
	if !strings.Contains(e.DownloadInfo, placeholderAssetUID) || !strings.Contains(e.DownloadInfo, placeholderFileUID) {
		return fmt.Errorf("endpoints: download info template missing %s or %s", placeholderAssetUID, placeholderFileUID)
	}
	return nil
}

// AssetFormatsURL expands the asset formats template for one asset.
func (e Endpoints) AssetFormatsURL(assetUID string) string {
	return strings.ReplaceAll(e.AssetFormats, placeholderAssetUID, assetUID)
}

// DownloadInfoURL expands the download info template for one asset file.
func (e Endpoints) DownloadInfoURL(assetUID, fileUID string) string {
	url := strings.ReplaceAll(e.DownloadInfo, placeholderAssetUID, assetUID)
	return strings.ReplaceAll(url, placeholderFileUID, fileUID)
}

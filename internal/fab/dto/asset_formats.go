package dto

import "encoding/json"

// AssetFormat is one downloadable format of an asset, as returned by the
// asset-formats endpoint.
type AssetFormat struct {
	AssetFormatType struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"assetFormatType"`
	Files []FormatFile `json:"files"`
}

// FormatFile is one downloadable file within a format.
type FormatFile struct {
	UID string `json:"uid"`
}

// ParseAssetFormats normalizes the asset-formats response body into a
// flat format sequence. The API returns either a bare JSON array or an
// object wrapping one under "assetFormats"; callers never branch on the
// shape.
func ParseAssetFormats(data []byte) ([]AssetFormat, error) {
	var direct []AssetFormat
	if err := json.Unmarshal(data, &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		AssetFormats []AssetFormat `json:"assetFormats"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.AssetFormats, nil
}

// FindFileUID returns the first file UID of the format whose type code
// matches, or "" when no such format (or no file) exists.
func FindFileUID(formats []AssetFormat, formatCode string) string {
	for _, f := range formats {
		if f.AssetFormatType.Code != formatCode {
			continue
		}
		for _, file := range f.Files {
			if file.UID != "" {
				return file.UID
			}
		}
	}
	return ""
}

package dto

// DownloadEntry is one descriptor in a download-info response. The client
// only acts on entries whose Type is "manifest".
type DownloadEntry struct {
	Type        string `json:"type"`
	DownloadURL string `json:"downloadUrl"`
	Expires     string `json:"expires"`
}

// DownloadInfo is the download-info endpoint response.
type DownloadInfo struct {
	DownloadInfo []DownloadEntry `json:"downloadInfo"`
}

// FindManifest returns the first manifest-typed entry, or nil when the
// response carries none.
func (d *DownloadInfo) FindManifest() *DownloadEntry {
	for i := range d.DownloadInfo {
		if d.DownloadInfo[i].Type == "manifest" {
			return &d.DownloadInfo[i]
		}
	}
	return nil
}

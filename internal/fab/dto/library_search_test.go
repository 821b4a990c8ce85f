package dto

import (
	"encoding/json"
	"testing"
	"time"
)

const sampleRecord = `{
	"uid": "asset-1",
	"title": "Fallback Name",
	"createdAt": "2024-12-17T15:30:00.000Z",
	"status": "active",
	"capabilities": {"addByVerse": true, "requestDownloadUrl": true},
	"licenses": [{"name": "Standard", "slug": "standard", "uid": "lic-1"}],
	"listing": {
		"title": "Stylized Forest Pack",
		"uid": "listing-1",
		"listingType": "asset",
		"tags": ["environment", {"slug": "stylized"}],
		"user": {"sellerName": "Acme", "uid": "seller-1"},
		"assetFormats": [{"assetFormatType": {"code": "unreal-engine", "name": "Unreal Engine"}, "versions": ["5.4"]}]
	}
}`

func TestToAssetsMapsRecord(t *testing.T) {
	var page LibraryPage
	if err := json.Unmarshal([]byte(`{"results": [`+sampleRecord+`]}`), &page); err != nil {
		t.Fatal(err)
	}

	assets := page.ToAssets()
	if len(assets) != 1 {
		t.Fatalf("ToAssets() returned %d assets, want 1", len(assets))
	}
	asset := assets[0]

	if asset.UID != "asset-1" {
		t.Errorf("UID = %q, want %q", asset.UID, "asset-1")
	}
	if asset.Title != "Stylized Forest Pack" {
		t.Errorf("Title = %q, want listing title to win over top-level title", asset.Title)
	}
	if asset.Status != "active" {
		t.Errorf("Status = %q, want %q", asset.Status, "active")
	}

	want := time.Date(2024, 12, 17, 15, 30, 0, 0, time.UTC)
	if !asset.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", asset.CreatedAt, want)
	}

	if asset.Capabilities == nil || !asset.Capabilities.RequestDownloadURL {
		t.Error("Capabilities.RequestDownloadURL should be true")
	}
	if len(asset.GrantedLicenses) != 1 || asset.GrantedLicenses[0].Slug != "standard" {
		t.Errorf("GrantedLicenses = %v, want one standard license", asset.GrantedLicenses)
	}

	if asset.Listing == nil {
		t.Fatal("Listing should be populated")
	}
	if got, want := asset.Listing.Tags, []string{"environment", "stylized"}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Tags = %v, want %v", got, want)
	}
	if asset.Listing.Seller == nil || asset.Listing.Seller.SellerName != "Acme" {
		t.Errorf("Seller = %v, want Acme", asset.Listing.Seller)
	}
	if len(asset.Listing.AssetFormats) != 1 || asset.Listing.AssetFormats[0].Code != "unreal-engine" {
		t.Errorf("AssetFormats = %v, want one unreal-engine format", asset.Listing.AssetFormats)
	}

	if len(asset.Raw) == 0 {
		t.Error("Raw record bytes should be retained")
	}
	var raw map[string]any
	if err := json.Unmarshal(asset.Raw, &raw); err != nil {
		t.Errorf("Raw should be the complete record JSON: %v", err)
	}
}

func TestToAssetsDropsRecordsWithoutUID(t *testing.T) {
	body := `{"results": [{"title": "ghost"}, {"uid": "asset-1", "title": "real"}]}`
	var page LibraryPage
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		t.Fatal(err)
	}

	assets := page.ToAssets()
	if len(assets) != 1 {
		t.Fatalf("ToAssets() returned %d assets, want 1", len(assets))
	}
	if assets[0].UID != "asset-1" {
		t.Errorf("UID = %q, want %q", assets[0].UID, "asset-1")
	}
}

func TestNextCursor(t *testing.T) {
	next := "tok-2"
	tests := []struct {
		name string
		page LibraryPage
		want string
	}{
		{"no cursors block", LibraryPage{}, ""},
		{"null next", LibraryPage{Cursors: &Cursors{}}, ""},
		{"present", LibraryPage{Cursors: &Cursors{Next: &next}}, "tok-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.NextCursor(); got != tt.want {
				t.Errorf("NextCursor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseAPITime(t *testing.T) {
	if got := parseAPITime(""); !got.IsZero() {
		t.Errorf("parseAPITime(\"\") = %v, want zero", got)
	}
	if got := parseAPITime("yesterday"); !got.IsZero() {
		t.Errorf("parseAPITime(invalid) = %v, want zero", got)
	}
	if got := parseAPITime("2025-01-02T03:04:05Z"); got.IsZero() {
		t.Error("parseAPITime(valid) should not be zero")
	}
}

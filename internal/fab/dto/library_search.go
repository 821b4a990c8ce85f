// Package dto contains the wire shapes of the marketplace API responses
// and their conversions into domain models.
package dto

import (
	"encoding/json"
	"time"

	"github.com/fabdl/fabdl/internal/model"
)

// Cursors is the pagination block of a library search response. A nil or
// empty Next means the walk is complete.
type Cursors struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// LibraryPage is one page of the library search response.
type LibraryPage struct {
	Results []AssetRecord `json:"results"`
	Cursors *Cursors      `json:"cursors"`
	Total   int           `json:"total"`
}

// NextCursor returns the opaque continuation token, or "" when this is
// the final page.
func (p *LibraryPage) NextCursor() string {
	if p.Cursors == nil || p.Cursors.Next == nil {
		return ""
	}
	return *p.Cursors.Next
}

// AssetRecord is one raw entitlement record in a library page.
type AssetRecord struct {
	UID          string          `json:"uid"`
	Title        string          `json:"title"`
	CreatedAt    string          `json:"createdAt"`
	Status       string          `json:"status"`
	Capabilities *capabilities   `json:"capabilities"`
	Licenses     []license       `json:"licenses"`
	Listing      *listing        `json:"listing"`
	Raw          json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps the complete record bytes alongside the typed
// fields so unknown listing data survives the round trip.
func (r *AssetRecord) UnmarshalJSON(data []byte) error {
	type plain AssetRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = AssetRecord(p)
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

type capabilities struct {
	AddByVerse         bool `json:"addByVerse"`
	RequestDownloadURL bool `json:"requestDownloadUrl"`
}

type license struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	URL       string `json:"url"`
	Type      string `json:"type"`
	IsCC0     bool   `json:"isCc0"`
	PriceTier string `json:"priceTier"`
	UID       string `json:"uid"`
}

type seller struct {
	SellerID        string `json:"sellerId"`
	SellerName      string `json:"sellerName"`
	UID             string `json:"uid"`
	ProfileImageURL string `json:"profileImageUrl"`
	CoverImageURL   string `json:"coverImageUrl"`
	IsSeller        bool   `json:"isSeller"`
}

type listing struct {
	Title         string          `json:"title"`
	UID           string          `json:"uid"`
	ListingType   string          `json:"listingType"`
	Description   string          `json:"description"`
	Tags          []tag           `json:"tags"`
	IsMature      bool            `json:"isMature"`
	LastUpdatedAt string          `json:"lastUpdatedAt"`
	Licenses      []license       `json:"licenses"`
	User          *seller         `json:"user"`
	AssetFormats  []listingFormat `json:"assetFormats"`
}

// tag is either a {"slug": "..."} object or a bare string.
type tag struct {
	Slug string
}

func (t *tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Slug = s
		return nil
	}
	var obj struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Slug = obj.Slug
	return nil
}

type listingFormat struct {
	AssetFormatType struct {
		Code       string   `json:"code"`
		Name       string   `json:"name"`
		GroupName  string   `json:"groupName"`
		Extensions []string `json:"extensions"`
	} `json:"assetFormatType"`
	Versions []string `json:"versions"`
}

// ToAssets converts the page's raw records to Asset domain models.
// Records without a UID are dropped: UID is the sole identity key and a
// record without one cannot be addressed later.
func (p *LibraryPage) ToAssets() []*model.Asset {
	assets := make([]*model.Asset, 0, len(p.Results))
	for i := range p.Results {
		if asset := p.Results[i].toAsset(); asset != nil {
			assets = append(assets, asset)
		}
	}
	return assets
}

func (r *AssetRecord) toAsset() *model.Asset {
	if r.UID == "" {
		return nil
	}

	asset := &model.Asset{
		UID:             r.UID,
		Title:           r.Title,
		CreatedAt:       parseAPITime(r.CreatedAt),
		Status:          r.Status,
		GrantedLicenses: toLicenses(r.Licenses),
		Raw:             r.Raw,
	}

	if r.Capabilities != nil {
		asset.Capabilities = &model.Capabilities{
			AddByVerse:         r.Capabilities.AddByVerse,
			RequestDownloadURL: r.Capabilities.RequestDownloadURL,
		}
	}

	if r.Listing != nil {
		asset.Listing = r.Listing.toListing()
		// Prefer the listing title for display; top-level title is a
		// fallback some records carry.
		if asset.Listing.Title != "" {
			asset.Title = asset.Listing.Title
		}
	}

	return asset
}

func (l *listing) toListing() *model.Listing {
	out := &model.Listing{
		Title:         l.Title,
		UID:           l.UID,
		ListingType:   l.ListingType,
		Description:   l.Description,
		IsMature:      l.IsMature,
		LastUpdatedAt: parseAPITime(l.LastUpdatedAt),
		Licenses:      toLicenses(l.Licenses),
	}

	for _, t := range l.Tags {
		if t.Slug != "" {
			out.Tags = append(out.Tags, t.Slug)
		}
	}

	if l.User != nil {
		out.Seller = &model.Seller{
			SellerID:        l.User.SellerID,
			SellerName:      l.User.SellerName,
			UID:             l.User.UID,
			ProfileImageURL: l.User.ProfileImageURL,
			CoverImageURL:   l.User.CoverImageURL,
			IsSeller:        l.User.IsSeller,
		}
	}

	for _, f := range l.AssetFormats {
		out.AssetFormats = append(out.AssetFormats, model.ListingFormat{
			Code:       f.AssetFormatType.Code,
			Name:       f.AssetFormatType.Name,
			GroupName:  f.AssetFormatType.GroupName,
			Extensions: f.AssetFormatType.Extensions,
			Versions:   f.Versions,
		})
	}

	return out
}

func toLicenses(in []license) []model.License {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.License, len(in))
	for i, l := range in {
		out[i] = model.License{
			Name:      l.Name,
			Slug:      l.Slug,
			URL:       l.URL,
			Type:      l.Type,
			IsCC0:     l.IsCC0,
			PriceTier: l.PriceTier,
			UID:       l.UID,
		}
	}
	return out
}

// parseAPITime parses the API's ISO timestamps ("2024-12-17T15:30:00.000Z").
// A missing or unparseable timestamp yields the zero time rather than an
// error; timestamps are descriptive, not load-bearing.
func parseAPITime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

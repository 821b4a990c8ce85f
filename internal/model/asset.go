package model

import (
	"encoding/json"
	"time"
)

// Asset represents one library entitlement.
//
// Asset is identified solely by its UID; everything else is descriptive
// data carried through from the API. The nested Listing, Capabilities and
// GrantedLicenses fields are opaque to the download pipeline; they are
// populated when the server provides them and passed through unexamined.
//
// Example:
//
//	library, _ := client.GetLibrary(ctx, "-createdAt")
//	for _, asset := range library.Assets {
//	    fmt.Printf("%s  %s\n", asset.UID, asset.Title)
//	}
type Asset struct {
	// UID is the unique entitlement identifier. Always non-empty for
	// assets produced by the client.
	UID string

	// Title is the display name, taken from the listing when present.
	Title string

	// CreatedAt is when the asset was added to the library.
	// Zero when the server omits or mangles the timestamp.
	CreatedAt time.Time

	// Status is the entitlement status (e.g. "approved").
	Status string

	// Capabilities describes what can be done with the entitlement.
	Capabilities *Capabilities

	// GrantedLicenses are the licenses granted with this entitlement,
	// distinct from the listing's offered licenses.
	GrantedLicenses []License

	// Listing is the marketplace listing the entitlement points at.
	Listing *Listing

	// Raw is the complete API record, kept for extensibility.
	Raw json.RawMessage
}

// Capabilities describes entitlement capabilities.
type Capabilities struct {
	AddByVerse         bool
	RequestDownloadURL bool
}

// License describes one license attached to a listing or entitlement.
type License struct {
	Name      string
	Slug      string
	URL       string
	Type      string
	IsCC0     bool
	PriceTier string
	UID       string
}

// Seller identifies the marketplace seller of a listing.
type Seller struct {
	SellerID        string
	SellerName      string
	UID             string
	ProfileImageURL string
	CoverImageURL   string
	IsSeller        bool
}

// Listing is the marketplace listing information attached to an asset.
type Listing struct {
	Title         string
	UID           string
	ListingType   string
	Description   string
	Tags          []string
	IsMature      bool
	LastUpdatedAt time.Time
	Licenses      []License
	Seller        *Seller
	AssetFormats  []ListingFormat
}

// ListingFormat is a format advertised on a listing (as opposed to the
// formats discovered through the asset-formats endpoint, which carry
// downloadable file UIDs).
type ListingFormat struct {
	Code       string
	Name       string
	GroupName  string
	Extensions []string
	Versions   []string
}

package fab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/fabdl/fabdl/internal/auth"
	"github.com/fabdl/fabdl/internal/fab/dto"
	"github.com/fabdl/fabdl/internal/model"
)

// Logical endpoint names used in error messages. Full URLs never appear
// in errors.
const (
	endpointLibrarySearch    = "library_search"
	endpointAssetFormats     = "asset_formats"
	endpointDownloadInfo     = "download_info"
	endpointManifestDownload = "manifest_download"
)

// DefaultRequestDelay is the flat pacing applied before every request
// when no explicit delay is configured.
const DefaultRequestDelay = 1500 * time.Millisecond

// DefaultSortBy is the library sort order used when callers pass "".
const DefaultSortBy = "-createdAt"

// Client talks to the marketplace API.
//
// One Client holds one HTTP session and is intended for single-threaded
// use; sequential reuse across operations is safe, concurrent use is the
// caller's responsibility.
type Client struct {
	session   *http.Client
	endpoints auth.Endpoints
	limiter   *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithRequestDelay sets the fixed inter-request delay. The delay applies
// uniformly before every request; it is flat pacing, not an adaptive
// rate controller. A non-positive delay disables pacing.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewClient creates a Client using the provider's session and endpoints.
func NewClient(provider auth.Provider, opts ...Option) *Client {
	c := &Client{
		session:   provider.Session(),
		endpoints: provider.Endpoints(),
		limiter:   rate.NewLimiter(rate.Every(DefaultRequestDelay), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues one paced GET and returns the response body. Non-2xx
// statuses and transport failures are mapped to the error taxonomy; the
// endpoint name (never the URL) identifies the failing operation.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid URL: %w", endpoint, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for key, values := range params {
			for _, v := range values {
				q.Set(key, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", endpoint, err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, networkError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(endpoint, err)
	}
	return body, nil
}

// FetchPage fetches one library search page. An empty cursor requests
// the first page.
func (c *Client) FetchPage(ctx context.Context, cursor, sortBy string) (*dto.LibraryPage, error) {
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	params := url.Values{"sortBy": {sortBy}}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	body, err := c.get(ctx, endpointLibrarySearch, c.endpoints.LibrarySearch, params)
	if err != nil {
		return nil, err
	}

	var page dto.LibraryPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &Error{Kind: KindAPI, Endpoint: endpointLibrarySearch, Msg: "malformed response body"}
	}
	return &page, nil
}

// PageWalker lazily walks the library's cursor chain.
//
// A walker is single-use: once Next returns false the walk is over.
// Start a fresh walk with Client.Walk; never reuse a cursor from a
// discarded walker, the service treats them as short-lived.
type PageWalker struct {
	client  *Client
	sortBy  string
	cursor  string
	page    *dto.LibraryPage
	err     error
	started bool
	done    bool
}

// Walk starts a new lazy walk over the library pages.
func (c *Client) Walk(sortBy string) *PageWalker {
	return &PageWalker{client: c, sortBy: sortBy}
}

// Next fetches the next page, returning false when the chain is
// exhausted or a fetch failed. Check Err after the loop.
func (w *PageWalker) Next(ctx context.Context) bool {
	if w.done || w.err != nil {
		return false
	}
	if w.started && w.cursor == "" {
		w.done = true
		return false
	}

	page, err := w.client.FetchPage(ctx, w.cursor, w.sortBy)
	if err != nil {
		w.err = err
		w.done = true
		return false
	}

	w.started = true
	w.page = page
	// An absent next-cursor ends the walk after this page.
	w.cursor = page.NextCursor()
	return true
}

// Page returns the page fetched by the last successful Next.
func (w *PageWalker) Page() *dto.LibraryPage {
	return w.page
}

// Err returns the first error encountered during the walk, if any.
func (w *PageWalker) Err() error {
	return w.err
}

// GetLibrary drains a full walk into a Library.
//
// The walk is all-or-nothing: any page fetch error propagates and no
// partial library is returned. TotalCount comes from the first page's
// total when the server reports one, otherwise from the concatenated
// asset count.
func (c *Client) GetLibrary(ctx context.Context, sortBy string) (*model.Library, error) {
	var (
		assets []*model.Asset
		total  int
		first  = true
	)

	walker := c.Walk(sortBy)
	for walker.Next(ctx) {
		page := walker.Page()
		if first {
			total = page.Total
			first = false
		}
		assets = append(assets, page.ToAssets()...)
	}
	if err := walker.Err(); err != nil {
		return nil, err
	}

	if total == 0 {
		total = len(assets)
	}
	return &model.Library{Assets: assets, TotalCount: total}, nil
}

// GetAsset retrieves a single asset by UID.
//
// The API has no single-asset endpoint, so this fetches the library and
// filters. Returns a not-found error when the UID is absent.
func (c *Client) GetAsset(ctx context.Context, assetUID string) (*model.Asset, error) {
	library, err := c.GetLibrary(ctx, DefaultSortBy)
	if err != nil {
		return nil, err
	}
	asset := library.FindByUID(assetUID)
	if asset == nil {
		return nil, notFoundError(endpointLibrarySearch, fmt.Sprintf("asset %q not in library", assetUID))
	}
	return asset, nil
}

// ListFormats lists the downloadable formats of an asset. The response
// shape (bare array vs wrapped object) is normalized away.
func (c *Client) ListFormats(ctx context.Context, assetUID string) ([]dto.AssetFormat, error) {
	body, err := c.get(ctx, endpointAssetFormats, c.endpoints.AssetFormatsURL(assetUID), nil)
	if err != nil {
		return nil, err
	}

	formats, err := dto.ParseAssetFormats(body)
	if err != nil {
		return nil, &Error{Kind: KindAPI, Endpoint: endpointAssetFormats, Msg: "malformed response body"}
	}
	return formats, nil
}

// DiscoverFileUID finds the file UID of an asset's format with the given
// type code (e.g. "unreal-engine"). Returns a not-found error when the
// asset has no such format.
func (c *Client) DiscoverFileUID(ctx context.Context, assetUID, formatCode string) (string, error) {
	formats, err := c.ListFormats(ctx, assetUID)
	if err != nil {
		return "", err
	}

	fileUID := dto.FindFileUID(formats, formatCode)
	if fileUID == "" {
		return "", notFoundError(endpointAssetFormats, fmt.Sprintf("no %q format available", formatCode))
	}
	return fileUID, nil
}

// ResolveManifestURL resolves the manifest download URL for one asset
// file, returning the URL and its server-reported expiry. Returns a
// not-found error when the download info carries no manifest entry.
func (c *Client) ResolveManifestURL(ctx context.Context, assetUID, fileUID, platform string) (downloadURL, expires string, err error) {
	params := url.Values{}
	if platform != "" {
		params.Set("platform", platform)
	}

	body, err := c.get(ctx, endpointDownloadInfo, c.endpoints.DownloadInfoURL(assetUID, fileUID), params)
	if err != nil {
		return "", "", err
	}

	var info dto.DownloadInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return "", "", &Error{Kind: KindAPI, Endpoint: endpointDownloadInfo, Msg: "malformed response body"}
	}

	entry := info.FindManifest()
	if entry == nil || entry.DownloadURL == "" {
		return "", "", notFoundError(endpointDownloadInfo, "no manifest entry in download info")
	}
	return entry.DownloadURL, entry.Expires, nil
}

// FetchBytes downloads an already resolved URL through the configured
// session, subject to the same pacing as API requests.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, endpointManifestDownload, rawURL, nil)
}

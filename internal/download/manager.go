package download

import (
	"context"
	"fmt"

	"github.com/fabdl/fabdl/internal/fab"
	"github.com/fabdl/fabdl/internal/ioutils"
	"github.com/fabdl/fabdl/internal/manifest"
	"github.com/fabdl/fabdl/internal/model"
)

// Status is a download progress stage reported to the observer.
type Status string

const (
	StatusResolving   Status = "resolving"
	StatusDownloading Status = "downloading"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// ProgressFunc observes batch download progress. It is invoked
// synchronously at each stage transition of each asset; a panic in the
// callback propagates to the DownloadManifests caller.
type ProgressFunc func(asset *model.Asset, status Status)

// Default resolution targets, matching the marketplace's primary format.
const (
	DefaultFormatCode = "unreal-engine"
	DefaultPlatform   = "Windows"
)

// Manager coordinates manifest downloads.
type Manager struct {
	client     *fab.Client
	parser     manifest.Parser
	formatCode string
	platform   string
}

// Option configures a Manager.
type Option func(*Manager)

// WithFormatCode sets the asset format whose file UID is resolved.
func WithFormatCode(code string) Option {
	return func(m *Manager) { m.formatCode = code }
}

// WithPlatform sets the platform passed to the download-info endpoint.
func WithPlatform(platform string) Option {
	return func(m *Manager) { m.platform = platform }
}

// NewManager creates a download Manager. The parser is only consulted
// lazily, when a caller invokes Outcome.Load.
func NewManager(client *fab.Client, parser manifest.Parser, opts ...Option) *Manager {
	m := &Manager{
		client:     client,
		parser:     parser,
		formatCode: DefaultFormatCode,
		platform:   DefaultPlatform,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DownloadManifest retrieves one asset's manifest into outputDir.
//
// The asset moves through resolving, downloading and writing; a failure
// at any stage produces a failed Outcome with the stage recorded in the
// reason, never an error return. onProgress may be nil.
func (m *Manager) DownloadManifest(ctx context.Context, asset *model.Asset, outputDir string, onProgress func(Status)) *Outcome {
	emit := func(s Status) {
		if onProgress != nil {
			onProgress(s)
		}
	}
	fail := func(stage string, err error) *Outcome {
		outcome := &Outcome{
			AssetUID: asset.UID,
			Err:      fmt.Errorf("%s: %w", stage, err),
			parser:   m.parser,
		}
		emit(StatusFailed)
		return outcome
	}

	emit(StatusResolving)

	fileUID, err := m.client.DiscoverFileUID(ctx, asset.UID, m.formatCode)
	if err != nil {
		return fail("resolution", err)
	}

	manifestURL, _, err := m.client.ResolveManifestURL(ctx, asset.UID, fileUID, m.platform)
	if err != nil {
		return fail("resolution", err)
	}

	emit(StatusDownloading)

	data, err := m.client.FetchBytes(ctx, manifestURL)
	if err != nil {
		return fail("fetch", err)
	}

	if err := ioutils.SafeCreateDir(outputDir); err != nil {
		return fail("write", err)
	}
	filename := ioutils.SanitizeFileName(asset.Title) + ".json"
	path, err := ioutils.JoinInside(outputDir, filename)
	if err != nil {
		return fail("write", err)
	}
	if err := ioutils.WriteFileAtomic(path, data); err != nil {
		return fail("write", err)
	}

	outcome := &Outcome{
		AssetUID: asset.UID,
		Path:     path,
		Size:     int64(len(data)),
		parser:   m.parser,
	}
	emit(StatusCompleted)
	return outcome
}

// DownloadManifests retrieves manifests for every asset, strictly
// sequentially and in input order.
//
// The returned slice always has exactly one Outcome per input asset, in
// the same positions; per-asset failures are isolated into failed
// Outcomes and never abort the rest of the batch.
func (m *Manager) DownloadManifests(ctx context.Context, assets []*model.Asset, outputDir string, onProgress ProgressFunc) []*Outcome {
	outcomes := make([]*Outcome, 0, len(assets))

	for _, asset := range assets {
		var perAsset func(Status)
		if onProgress != nil {
			perAsset = func(s Status) { onProgress(asset, s) }
		}
		outcomes = append(outcomes, m.DownloadManifest(ctx, asset, outputDir, perAsset))
	}

	return outcomes
}

package download

import (
	"fmt"
	"os"

	"github.com/fabdl/fabdl/internal/manifest"
	"github.com/fabdl/fabdl/internal/model"
)

// Outcome is the tagged per-asset result of a manifest download: either
// a written file (Path, Size) or a failure reason.
//
// The Outcome references the written file but does not own it; the
// orchestrator never deletes files after the fact.
type Outcome struct {
	// AssetUID identifies the asset this outcome belongs to.
	AssetUID string

	// Path is the local path of the written manifest. Empty on failure.
	Path string

	// Size is the written byte count. Zero on failure.
	Size int64

	// Err carries the failure, prefixed with the pipeline stage
	// ("resolution:", "fetch:" or "write:"). Nil on success.
	Err error

	parser manifest.Parser
	parsed *model.ParsedManifest
}

// Succeeded reports whether the manifest was downloaded and written.
func (o *Outcome) Succeeded() bool {
	return o.Err == nil
}

// FailureReason returns the redacted failure message, or "" on success.
func (o *Outcome) FailureReason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Load reads the downloaded manifest file and parses it.
//
// Parsing is deferred until the first Load call and the result is cached
// within the Outcome's lifetime, so callers that only need existence or
// size never pay the parse cost. Load fails explicitly when called on a
// failed outcome, and when the backing file has been removed since the
// download; the cache is never served for a vanished file.
func (o *Outcome) Load() (*model.ParsedManifest, error) {
	if o.Err != nil {
		return nil, fmt.Errorf("cannot load manifest: download failed: %w", o.Err)
	}

	if _, err := os.Stat(o.Path); err != nil {
		return nil, fmt.Errorf("manifest file missing: %w", err)
	}
	if o.parsed != nil {
		return o.parsed, nil
	}

	data, err := os.ReadFile(o.Path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest file: %w", err)
	}

	parsed, err := o.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	o.parsed = parsed
	return parsed, nil
}

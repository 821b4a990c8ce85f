package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/fabdl/fabdl/internal/model"
)

//go:embed schema/manifest.schema.json
var manifestSchema string

// ErrInvalidManifest marks payloads that are not decodable manifests
// (invalid UTF-8 or malformed JSON), as opposed to request failures or
// schema mismatches.
var ErrInvalidManifest = errors.New("invalid manifest")

// ValidationError reports a manifest that decoded fine but does not
// match the manifest schema.
type ValidationError struct {
	// Detail is the human-readable mismatch description, naming the
	// offending location and constraint.
	Detail string
}

func (e *ValidationError) Error() string {
	return "manifest schema validation failed: " + e.Detail
}

// Parser converts raw manifest bytes into a ParsedManifest. It is the
// pluggable codec of the download pipeline.
type Parser interface {
	Parse(data []byte) (*model.ParsedManifest, error)
}

// JSONParser is the default Parser for UTF-8 JSON manifests.
//
// With validation enabled, the decoded document is checked against the
// embedded manifest schema before field extraction, so missing required
// keys or wrong value shapes produce a *ValidationError instead of a
// zero-valued manifest.
type JSONParser struct {
	schema *jsonschema.Schema
}

// NewJSONParser creates a JSONParser. validate toggles schema validation.
//
// The embedded schema is compiled at construction time; compilation of a
// bundled, known-good schema cannot fail, so a failure here panics.
func NewJSONParser(validate bool) *JSONParser {
	p := &JSONParser{}
	if validate {
		sch, err := jsonschema.CompileString("manifest.schema.json", manifestSchema)
		if err != nil {
			panic(fmt.Sprintf("manifest: compiling embedded schema: %v", err))
		}
		p.schema = sch
	}
	return p
}

// wire shape of a JSON manifest document.
type jsonManifest struct {
	ManifestFileVersion string `json:"ManifestFileVersion"`
	AppID               string `json:"AppID"`
	AppNameString       string `json:"AppNameString"`
	BuildVersionString  string `json:"BuildVersionString"`
	FileManifestList    []struct {
		Filename       string            `json:"Filename"`
		FileHash       string            `json:"FileHash"`
		FileChunkParts []json.RawMessage `json:"FileChunkParts"`
	} `json:"FileManifestList"`
}

// Parse decodes a UTF-8 JSON manifest.
//
// Returns an error wrapping ErrInvalidManifest for undecodable input and
// a *ValidationError for schema mismatches when validation is enabled.
func (p *JSONParser) Parse(data []byte) (*model.ParsedManifest, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: payload is not valid UTF-8", ErrInvalidManifest)
	}

	if p.schema != nil {
		// Validate the generic decoding first so error messages name
		// schema locations rather than Go struct fields.
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
		if err := p.schema.Validate(doc); err != nil {
			return nil, &ValidationError{Detail: err.Error()}
		}
	}

	var raw jsonManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	parsed := &model.ParsedManifest{
		Version:      raw.ManifestFileVersion,
		AppID:        raw.AppID,
		AppName:      raw.AppNameString,
		BuildVersion: raw.BuildVersionString,
	}
	for _, f := range raw.FileManifestList {
		parsed.Files = append(parsed.Files, model.ManifestFile{
			Filename:   f.Filename,
			FileHash:   f.FileHash,
			ChunkParts: f.FileChunkParts,
		})
	}
	return parsed, nil
}

// Format identifies a manifest payload's encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatBinary Format = "binary"
)

// DetectFormat reports whether a manifest payload is JSON or binary.
// JSON manifests always start with an object brace; anything else is
// treated as the binary/compressed variant.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatBinary
}

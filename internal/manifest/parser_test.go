package manifest

import (
	"errors"
	"testing"
)

const validManifest = `{
	"ManifestFileVersion": "013",
	"AppID": "101",
	"AppNameString": "ForestPack",
	"BuildVersionString": "1.2.0",
	"FileManifestList": [
		{"Filename": "Content/Tree.uasset", "FileHash": "abc123", "FileChunkParts": [{"Guid": "g1"}]},
		{"Filename": "Content/Rock.uasset", "FileHash": "def456", "FileChunkParts": []}
	]
}`

func TestJSONParser_Parse(t *testing.T) {
	parser := NewJSONParser(false)

	parsed, err := parser.Parse([]byte(validManifest))
	if err != nil {
		t.Fatalf("Parse = %v", err)
	}

	if parsed.Version != "013" {
		t.Errorf("Version = %q, want 013", parsed.Version)
	}
	if parsed.AppName != "ForestPack" {
		t.Errorf("AppName = %q, want ForestPack", parsed.AppName)
	}
	if parsed.BuildVersion != "1.2.0" {
		t.Errorf("BuildVersion = %q, want 1.2.0", parsed.BuildVersion)
	}
	if len(parsed.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(parsed.Files))
	}
	if parsed.Files[0].Filename != "Content/Tree.uasset" || parsed.Files[0].FileHash != "abc123" {
		t.Errorf("Files[0] = %+v", parsed.Files[0])
	}
	if len(parsed.Files[0].ChunkParts) != 1 {
		t.Errorf("Files[0].ChunkParts = %d, want 1", len(parsed.Files[0].ChunkParts))
	}
}

func TestJSONParser_MalformedInput(t *testing.T) {
	parser := NewJSONParser(false)

	for _, input := range [][]byte{
		[]byte("not json at all"),
		[]byte(`{"truncated": `),
		{0xff, 0xfe, 0x00}, // not UTF-8
	} {
		_, err := parser.Parse(input)
		if !errors.Is(err, ErrInvalidManifest) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidManifest", input, err)
		}
	}
}

func TestJSONParser_SchemaValidation(t *testing.T) {
	parser := NewJSONParser(true)

	// Valid document passes.
	if _, err := parser.Parse([]byte(validManifest)); err != nil {
		t.Fatalf("valid manifest rejected: %v", err)
	}

	// Missing required keys produce a ValidationError, not a generic
	// parse error.
	_, err := parser.Parse([]byte(`{"ManifestFileVersion": "013"}`))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v (%T), want *ValidationError", err, err)
	}

	// Wrong value shape is also a schema mismatch.
	_, err = parser.Parse([]byte(`{
		"ManifestFileVersion": "013",
		"AppNameString": "X",
		"BuildVersionString": "1",
		"FileManifestList": "not-an-array"
	}`))
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v (%T), want *ValidationError", err, err)
	}

	// Malformed bytes still report ErrInvalidManifest with validation on.
	_, err = parser.Parse([]byte("garbage"))
	if !errors.Is(err, ErrInvalidManifest) {
		t.Fatalf("error = %v, want ErrInvalidManifest", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  Format
	}{
		{"json object", []byte(`{"a":1}`), FormatJSON},
		{"json with leading whitespace", []byte("  \n\t{}"), FormatJSON},
		{"binary", []byte{0x1f, 0x8b, 0x08}, FormatBinary},
		{"empty", nil, FormatBinary},
		{"array is not a manifest", []byte(`[1,2]`), FormatBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.input); got != tt.want {
				t.Errorf("DetectFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

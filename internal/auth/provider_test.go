package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func testEndpoints(base string) Endpoints {
	return Endpoints{
		LibrarySearch: base + "/library/search",
		AssetFormats:  base + "/library/{asset_uid}/asset-formats",
		DownloadInfo:  base + "/library/{asset_uid}/files/{file_uid}/download-info",
	}
}

func TestEndpoints_Validate(t *testing.T) {
	tests := []struct {
		name      string
		endpoints Endpoints
		wantErr   bool
	}{
		{"valid", testEndpoints("https://api.example.com"), false},
		{"empty library search", Endpoints{
			AssetFormats: "x/{asset_uid}",
			DownloadInfo: "x/{asset_uid}/{file_uid}",
		}, true},
		{"missing asset placeholder", Endpoints{
			LibrarySearch: "x/search",
			AssetFormats:  "x/formats",
			DownloadInfo:  "x/{asset_uid}/{file_uid}",
		}, true},
		{"missing file placeholder", Endpoints{
			LibrarySearch: "x/search",
			AssetFormats:  "x/{asset_uid}",
			DownloadInfo:  "x/{asset_uid}/info",
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.endpoints.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEndpoints_Expansion(t *testing.T) {
	e := testEndpoints("https://api.example.com")

	got := e.AssetFormatsURL("a1")
	want := "https://api.example.com/library/a1/asset-formats"
	if got != want {
		t.Errorf("AssetFormatsURL = %q, want %q", got, want)
	}

	got = e.DownloadInfoURL("a1", "f9")
	want = "https://api.example.com/library/a1/files/f9/download-info"
	if got != want {
		t.Errorf("DownloadInfoURL = %q, want %q", got, want)
	}
}

func TestCookieProvider_InjectsHeaders(t *testing.T) {
	var gotCookie, gotAgent, gotExtra string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("sessionid"); err == nil {
			gotCookie = c.Value
		}
		gotAgent = r.Header.Get("User-Agent")
		gotExtra = r.Header.Get("X-Client")
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	provider, err := NewCookieProvider(CookieConfig{
		Cookies:   map[string]string{"sessionid": "s3cr3t"},
		Endpoints: testEndpoints(server.URL),
		UserAgent: "fabdl-test",
		Headers:   map[string]string{"X-Client": "tui"},
	})
	if err != nil {
		t.Fatalf("NewCookieProvider = %v", err)
	}

	resp, err := provider.Session().Get(server.URL + "/library/search")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if gotCookie != "s3cr3t" {
		t.Errorf("cookie = %q, want s3cr3t", gotCookie)
	}
	if gotAgent != "fabdl-test" {
		t.Errorf("user agent = %q, want fabdl-test", gotAgent)
	}
	if gotExtra != "tui" {
		t.Errorf("extra header = %q, want tui", gotExtra)
	}
}

func TestCookieProvider_ReusesSession(t *testing.T) {
	provider, err := NewCookieProvider(CookieConfig{
		Endpoints: testEndpoints("https://api.example.com"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if provider.Session() != provider.Session() {
		t.Error("Session() returned distinct clients")
	}
}

func TestNewCookieProvider_InvalidEndpoints(t *testing.T) {
	_, err := NewCookieProvider(CookieConfig{})
	if err == nil {
		t.Fatal("NewCookieProvider accepted empty endpoints")
	}
}

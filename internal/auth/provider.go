package auth

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// Default transport timeouts, overridable via CookieConfig.
const (
	defaultConnectTimeout = 10 * time.Second
	defaultReadTimeout    = 30 * time.Second
)

// Provider supplies an authenticated HTTP session plus the endpoint URL
// set. Implementations decide how requests are authenticated; the
// built-in CookieProvider uses a fixed cookie map.
type Provider interface {
	// Session returns a reusable, connection-pooled HTTP client with
	// authentication baked into its transport. Implementations return
	// the same client on every call.
	Session() *http.Client

	// Endpoints returns the endpoint URL templates.
	Endpoints() Endpoints
}

// CookieConfig configures a CookieProvider.
type CookieConfig struct {
	// Cookies are sent with every request.
	Cookies map[string]string

	// Endpoints is the endpoint URL template set. Required.
	Endpoints Endpoints

	// UserAgent identifies the client. Empty means no User-Agent header
	// beyond Go's default.
	UserAgent string

	// Headers are extra headers applied to every request.
	Headers map[string]string

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// ConnectTimeout bounds connection establishment. Zero means the
	// default (10s).
	ConnectTimeout time.Duration

	// ReadTimeout bounds the wait for response headers. Zero means the
	// default (30s).
	ReadTimeout time.Duration
}

// CookieProvider is the built-in cookie-based Provider.
//
// The session is constructed once and reused; its transport injects the
// configured cookies and headers into every outgoing request.
type CookieProvider struct {
	endpoints Endpoints
	session   *http.Client
}

// NewCookieProvider builds a CookieProvider from cfg. It fails only when
// the endpoint templates are malformed.
func NewCookieProvider(cfg CookieConfig) (*CookieProvider, error) {
	if err := cfg.Endpoints.Validate(); err != nil {
		return nil, err
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout == 0 {
		connectTimeout = defaultConnectTimeout
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = defaultReadTimeout
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		ResponseHeaderTimeout: readTimeout,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}

	session := &http.Client{
		Transport: &headerTransport{
			base:      transport,
			cookies:   cloneMap(cfg.Cookies),
			headers:   cloneMap(cfg.Headers),
			userAgent: cfg.UserAgent,
		},
	}

	return &CookieProvider{
		endpoints: cfg.Endpoints,
		session:   session,
	}, nil
}

// Session returns the pooled HTTP client. The same client is returned on
// every call.
func (p *CookieProvider) Session() *http.Client {
	return p.session
}

// Endpoints returns the configured endpoint templates.
func (p *CookieProvider) Endpoints() Endpoints {
	return p.endpoints
}

// headerTransport injects cookies and identifying headers into every
// request before delegating to the underlying transport.
type headerTransport struct {
	base      http.RoundTripper
	cookies   map[string]string
	headers   map[string]string
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone so retries and redirects never see a half-mutated request.
	req = req.Clone(req.Context())

	for name, value := range t.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	for name, value := range t.headers {
		req.Header.Set(name, value)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	return t.base.RoundTrip(req)
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Package auth supplies the transport layer for the Fab API client.
//
// A Provider pairs a configured, connection-pooled *http.Client with the
// set of endpoint URL templates the client needs. The split keeps the
// retrieval pipeline in internal/fab decoupled from any specific
// authentication scheme: swap the Provider and the rest of the client is
// untouched.
//
// # Built-in provider
//
// CookieProvider injects a fixed cookie map (plus User-Agent and any
// extra headers) into every request:
//
//	provider, err := auth.NewCookieProvider(auth.CookieConfig{
//	    Cookies:   map[string]string{"sessionid": "..."},
//	    Endpoints: endpoints,
//	    UserAgent: "fabdl",
//	})
//	client := fab.NewClient(provider)
package auth

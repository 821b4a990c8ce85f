// Package fab implements the marketplace API client: cursor-based
// library pagination, per-asset format discovery and manifest URL
// resolution.
//
// The Client is constructed from an auth.Provider and stays otherwise
// agnostic of the authentication scheme. All requests flow through a
// flat rate limiter so the client respects the service's informal rate
// limits regardless of which operation issues the request.
//
// # Basic usage
//
//	client := fab.NewClient(provider, fab.WithRequestDelay(1500*time.Millisecond))
//
//	library, err := client.GetLibrary(ctx, "-createdAt")
//	if err != nil {
//	    if fab.IsAuthentication(err) {
//	        // cookies expired
//	    }
//	    return err
//	}
//
// # Pagination
//
// GetLibrary drains the full cursor chain. For page-at-a-time access use
// the walker, which follows the bufio.Scanner idiom:
//
//	walker := client.Walk("-createdAt")
//	for walker.Next(ctx) {
//	    page := walker.Page()
//	    // ...
//	}
//	if err := walker.Err(); err != nil {
//	    return err
//	}
//
// Cursors are opaque, single-use, server-issued tokens. Each Walk starts
// fresh; cursors must never be persisted across walks or processes.
package fab

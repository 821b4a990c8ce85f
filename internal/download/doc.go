// Package download provides the orchestration logic for retrieving
// manifests from the marketplace and persisting them to disk.
//
// # Manager
//
// The Manager drives end-to-end retrieval for one or many assets:
//
//  1. Resolve the asset's manifest URL (format discovery + download info)
//  2. Fetch the manifest bytes through the configured transport
//  3. Write them atomically under a path-safe destination
//  4. Report a per-asset Outcome
//
// # Basic usage
//
//	manager := download.NewManager(client, manifest.NewJSONParser(false))
//
//	outcomes := manager.DownloadManifests(ctx, library.Assets, outputDir,
//	    func(asset *model.Asset, status download.Status) {
//	        fmt.Printf("%s: %s\n", asset.Title, status)
//	    })
//
// # Failure isolation
//
// A failure on one asset never aborts its siblings: DownloadManifests
// always returns exactly one Outcome per input asset, positionally
// aligned with the input. This is the correctness contract callers rely
// on when correlating results back to requested assets.
//
// Progress callbacks run synchronously on the calling goroutine. A panic
// raised by a callback is deliberately not recovered; it terminates the
// batch and propagates to the caller.
//
// # Pacing and retries
//
// The Manager performs no retries; the flat inter-request delay lives in
// the fab.Client, so every resolution and fetch request is paced
// uniformly. Batches run strictly sequentially in input order.
package download
